package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"skillhive-agent/internal/core/domain"
	"skillhive-agent/internal/core/ports"
)

// transcriptKeep bounds how many chat messages the file store retains per
// backend.
const transcriptKeep = 200

type JSONStorage struct {
	FilePath string
	mu       sync.RWMutex
	Data     StorageData
}

type StorageData struct {
	Tokens   map[string]string          `json:"tokens"`
	Messages map[string][]storedMessage `json:"messages"`
}

type storedMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	From      string    `json:"from"`
	CreatedAt time.Time `json:"created_at"`
}

func NewJSONStorage(filePath string) (*JSONStorage, error) {
	s := &JSONStorage{
		FilePath: filePath,
		Data: StorageData{
			Tokens:   make(map[string]string),
			Messages: make(map[string][]storedMessage),
		},
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := s.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

var _ ports.Storage = (*JSONStorage)(nil)

func (s *JSONStorage) loadFromFile() error {
	file, err := os.ReadFile(s.FilePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, &s.Data); err != nil {
		return err
	}
	if s.Data.Tokens == nil {
		s.Data.Tokens = make(map[string]string)
	}
	if s.Data.Messages == nil {
		s.Data.Messages = make(map[string][]storedMessage)
	}
	return nil
}

func (s *JSONStorage) saveToFile() error {
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}
	// The file holds a bearer token.
	return os.WriteFile(s.FilePath, data, 0600)
}

func (s *JSONStorage) SaveToken(backend, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Data.Tokens[backend] = token
	return s.saveToFile()
}

func (s *JSONStorage) LoadToken(backend string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Data.Tokens[backend], nil
}

func (s *JSONStorage) ClearToken(backend string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Data.Tokens, backend)
	return s.saveToFile()
}

func (s *JSONStorage) SaveMessage(ctx context.Context, backend string, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append(s.Data.Messages[backend], storedMessage{
		ID:        msg.ID,
		Text:      msg.Text,
		From:      msg.From,
		CreatedAt: msg.CreatedAt,
	})
	if len(msgs) > transcriptKeep {
		msgs = msgs[len(msgs)-transcriptKeep:]
	}
	s.Data.Messages[backend] = msgs
	return s.saveToFile()
}

func (s *JSONStorage) RecentMessages(ctx context.Context, backend string, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.Data.Messages[backend]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, domain.Message{ID: m.ID, Text: m.Text, From: m.From, CreatedAt: m.CreatedAt})
	}
	return out, nil
}
