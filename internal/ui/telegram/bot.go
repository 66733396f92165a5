// Package telegram carries the assistant conversation over a Telegram bot.
// Only messages from the configured chat are forwarded.
package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"skillhive-agent/internal/core/ports"
)

type Transport struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

func New(token string, chatIDStr string) (*Transport, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id: %v", err)
	}

	return &Transport{Bot: bot, ChatID: chatID}, nil
}

var _ ports.ChatTransport = (*Transport)(nil)

func (t *Transport) Lines(ctx context.Context) (<-chan string, error) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.Bot.GetUpdatesChan(u)

	ch := make(chan string)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				t.Bot.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message == nil || update.Message.Chat.ID != t.ChatID {
					continue
				}
				select {
				case ch <- update.Message.Text:
				case <-ctx.Done():
					t.Bot.StopReceivingUpdates()
					return
				}
			}
		}
	}()
	return ch, nil
}

func (t *Transport) Reply(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(t.ChatID, text)
	_, err := t.Bot.Send(msg)
	return err
}
