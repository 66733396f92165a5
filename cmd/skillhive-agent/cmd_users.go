package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillhive-agent/internal/core/domain"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all users on the platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := backend.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.Follow(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✅ Now following %s\n", args[0])
		return nil
	},
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <user-id>",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.Unfollow(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✅ Unfollowed %s\n", args[0])
		return nil
	},
}

var followersCmd = &cobra.Command{
	Use:   "followers [user-id]",
	Short: "List a user's followers (default: yourself)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := targetUser(args)
		if err != nil {
			return err
		}
		users, err := backend.Followers(cmd.Context(), userID)
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	},
}

var followingCmd = &cobra.Command{
	Use:   "following [user-id]",
	Short: "List who a user follows (default: yourself)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := targetUser(args)
		if err != nil {
			return err
		}
		users, err := backend.Following(cmd.Context(), userID)
		if err != nil {
			return err
		}
		printUsers(users)
		return nil
	},
}

func targetUser(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return requireUser()
}

func printUsers(users []domain.User) {
	if len(users) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, u := range users {
		fmt.Printf("%-26s  %s %s <%s>\n", u.ID, u.FirstName, u.LastName, u.Email)
	}
}

func init() {
	rootCmd.AddCommand(usersCmd, followCmd, unfollowCmd, followersCmd, followingCmd)
}
