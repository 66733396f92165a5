package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var mediaDescription string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a media file and print its reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		media, err := backend.UploadMedia(cmd.Context(), filepath.Base(args[0]), f, mediaDescription)
		if err != nil {
			return err
		}
		fmt.Printf("📎 Uploaded: id=%s url=%s type=%s\n", media.ID, media.URL, media.ContentType)
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&mediaDescription, "description", "", "media description")
	rootCmd.AddCommand(uploadCmd)
}
