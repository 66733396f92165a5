// Package term is the terminal chat transport: stdin lines in, stdout
// replies out.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"skillhive-agent/internal/core/ports"
)

type Transport struct {
	In  io.Reader
	Out io.Writer
}

func New() *Transport {
	return &Transport{In: os.Stdin, Out: os.Stdout}
}

var _ ports.ChatTransport = (*Transport)(nil)

func (t *Transport) Lines(ctx context.Context) (<-chan string, error) {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(t.In)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (t *Transport) Reply(ctx context.Context, text string) error {
	_, err := fmt.Fprintf(t.Out, "🤖 %s\n", text)
	return err
}
