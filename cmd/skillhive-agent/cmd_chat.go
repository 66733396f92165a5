package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillhive-agent/internal/assistant"
	"skillhive-agent/internal/core/ports"
	"skillhive-agent/internal/ui/telegram"
	"skillhive-agent/internal/ui/term"
)

var chatTelegram bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the profile assistant",
	Long: `Starts the profile-editing assistant. Say things like
'change my email' or 'update my birthday'; the assistant asks for the new
value and applies it to your profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}

		var transport ports.ChatTransport
		if chatTelegram {
			if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
				return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set for --telegram")
			}
			tg, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
			if err != nil {
				return err
			}
			transport = tg
		} else {
			transport = term.New()
		}

		ctx := cmd.Context()
		bot := assistant.New(backend, sess, store, logger)

		if err := transport.Reply(ctx, bot.Greet().Text); err != nil {
			return err
		}

		lines, err := transport.Lines(ctx)
		if err != nil {
			return err
		}

		// One turn at a time: the next line is not read until every reply
		// for the previous turn has been sent.
		for line := range lines {
			for _, reply := range bot.Handle(ctx, line) {
				if err := transport.Reply(ctx, reply.Text); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatTelegram, "telegram", false, "chat over Telegram instead of the terminal")
	rootCmd.AddCommand(chatCmd)
}
