package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"skillhive-agent/internal/core/domain"
)

var (
	feedMine bool
	feedUser string
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show a feed: home (default), your own posts, or another user's",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			items []domain.FeedItem
			err   error
		)
		switch {
		case feedUser != "":
			items, err = builder.Profile(cmd.Context(), feedUser, sess.UserID())
		case feedMine:
			viewerID, uerr := requireUser()
			if uerr != nil {
				return uerr
			}
			items, err = builder.Dashboard(cmd.Context(), viewerID)
		default:
			viewerID, uerr := requireUser()
			if uerr != nil {
				return uerr
			}
			items, err = builder.Home(cmd.Context(), viewerID)
		}
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("Your feed is empty. Follow other users to see their posts here.")
			return nil
		}
		for _, item := range items {
			printFeedItem(item)
		}
		return nil
	},
}

func printFeedItem(item domain.FeedItem) {
	p := item.Post
	liked := " "
	if item.ViewerLike != nil {
		liked = "♥"
	}
	fmt.Printf("─── %s ───\n", p.Title)
	fmt.Printf("    id=%s  by=%s  %s  [%s]\n", p.ID, p.UserID, p.CreatedAt.Format(time.DateOnly), p.Type)
	fmt.Printf("    %s\n", p.Content)
	if p.Template != nil {
		fmt.Printf("    template: %s", p.Template.Type)
		if len(p.Template.SkillsLearned) > 0 {
			fmt.Printf("  skills: %v", p.Template.SkillsLearned)
		}
		fmt.Println()
	}
	fmt.Printf("    %s %d likes   💬 %d comments\n", liked, len(item.Likes), len(item.Comments))
	for _, c := range item.Comments {
		fmt.Printf("      💬 %s: %s\n", c.UserID, c.Content)
	}
}

func init() {
	feedCmd.Flags().BoolVar(&feedMine, "mine", false, "show your own posts (dashboard view)")
	feedCmd.Flags().StringVar(&feedUser, "user", "", "show posts by the given user id")

	rootCmd.AddCommand(feedCmd)
}
