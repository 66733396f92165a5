package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notifUnreadOnly bool

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		notifs, err := backend.ListNotifications(cmd.Context(), notifUnreadOnly)
		if err != nil {
			return err
		}
		if len(notifs) == 0 {
			fmt.Println("🔕 No notifications.")
			return nil
		}
		for _, n := range notifs {
			marker := "🔔"
			if n.IsRead {
				marker = "  "
			}
			fmt.Printf("%s %-26s  [%s] %s", marker, n.ID, n.Type, n.ActorName)
			if n.PostTitle != "" {
				fmt.Printf(" on %q", n.PostTitle)
			}
			if n.Content != "" {
				fmt.Printf(": %s", n.Content)
			}
			fmt.Println()
		}
		return nil
	},
}

var notifReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark one notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.MarkNotificationRead(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("✅ Marked as read.")
		return nil
	},
}

var notifReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.MarkAllNotificationsRead(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✅ All notifications marked as read.")
		return nil
	},
}

var notifCountCmd = &cobra.Command{
	Use:   "unread-count",
	Short: "Show the unread notification count",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		count, err := backend.UnreadNotificationCount(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("🔔 %d unread\n", count)
		return nil
	},
}

func init() {
	notificationsCmd.Flags().BoolVar(&notifUnreadOnly, "unread", false, "only unread notifications")
	notificationsCmd.AddCommand(notifReadCmd, notifReadAllCmd, notifCountCmd)
	rootCmd.AddCommand(notificationsCmd)
}
