package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillhive-agent/internal/core/domain"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create, edit, or delete posts",
}

var (
	postTitle    string
	postContent  string
	postType     string
	postMediaURL []string
)

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if postTitle == "" || postContent == "" {
			return fmt.Errorf("--title and --content are required")
		}

		post := domain.Post{Title: postTitle, Content: postContent, Type: postType}
		for _, u := range postMediaURL {
			post.Media = append(post.Media, domain.MediaItem{URL: u, Type: "image"})
		}

		created, err := backend.CreatePost(cmd.Context(), post)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Post published: %s\n", created.ID)
		return nil
	},
}

var postEditCmd = &cobra.Command{
	Use:   "edit <post-id>",
	Short: "Update a post's title/content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		existing, err := backend.GetPost(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if postTitle != "" {
			existing.Title = postTitle
		}
		if postContent != "" {
			existing.Content = postContent
		}
		updated, err := backend.UpdatePost(cmd.Context(), *existing)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Post updated: %s\n", updated.ID)
		return nil
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.DeletePost(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("🗑  Post deleted.")
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage comments on a post",
}

var commentListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "List comments on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comments, err := backend.ListComments(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(comments) == 0 {
			fmt.Println("(no comments)")
			return nil
		}
		for _, c := range comments {
			fmt.Printf("%-26s  %s: %s\n", c.ID, c.UserID, c.Content)
		}
		return nil
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id> <text>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		created, err := backend.CreateComment(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("💬 Comment added: %s\n", created.ID)
		return nil
	},
}

var commentEditCmd = &cobra.Command{
	Use:   "edit <post-id> <comment-id> <text>",
	Short: "Edit a comment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if _, err := backend.UpdateComment(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("✅ Comment updated.")
		return nil
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <post-id> <comment-id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.DeleteComment(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("🗑  Comment deleted.")
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.LikePost(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("♥ Liked.")
		return nil
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike <post-id>",
	Short: "Remove your like from a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.UnlikePost(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("♡ Unliked.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{postCreateCmd, postEditCmd} {
		c.Flags().StringVar(&postTitle, "title", "", "post title")
		c.Flags().StringVar(&postContent, "content", "", "post body")
	}
	postCreateCmd.Flags().StringVar(&postType, "type", domain.PostTypeSkillShare, "post type (skill_share or progress_update)")
	postCreateCmd.Flags().StringArrayVar(&postMediaURL, "media", nil, "media URL (repeatable)")

	postCmd.AddCommand(postCreateCmd, postEditCmd, postDeleteCmd)
	commentCmd.AddCommand(commentListCmd, commentAddCmd, commentEditCmd, commentDeleteCmd)
	rootCmd.AddCommand(postCmd, commentCmd, likeCmd, unlikeCmd)
}
