package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillhive-agent/internal/core/domain"
)

func newTestStorage(t *testing.T) (*JSONStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent.json")
	s, err := NewJSONStorage(path)
	require.NoError(t, err)
	return s, path
}

func TestTokenRoundTripAcrossInstances(t *testing.T) {
	s, path := newTestStorage(t)
	require.NoError(t, s.SaveToken("skillhive", "tok-abc"))

	// A fresh instance reads the same file.
	reopened, err := NewJSONStorage(path)
	require.NoError(t, err)

	tok, err := reopened.LoadToken("skillhive")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)
}

func TestLoadMissingTokenIsEmptyNotError(t *testing.T) {
	s, _ := newTestStorage(t)

	tok, err := s.LoadToken("skillhive")
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestClearTokenPersists(t *testing.T) {
	s, path := newTestStorage(t)
	require.NoError(t, s.SaveToken("skillhive", "tok"))
	require.NoError(t, s.ClearToken("skillhive"))

	reopened, err := NewJSONStorage(path)
	require.NoError(t, err)
	tok, err := reopened.LoadToken("skillhive")
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokensAreKeyedByBackend(t *testing.T) {
	s, _ := newTestStorage(t)
	require.NoError(t, s.SaveToken("skillhive", "a"))
	require.NoError(t, s.SaveToken("other", "b"))
	require.NoError(t, s.ClearToken("other"))

	tok, err := s.LoadToken("skillhive")
	require.NoError(t, err)
	assert.Equal(t, "a", tok)
}

func TestMessagesRoundTripInOrder(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStorage(t)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		msg := domain.Message{
			ID:        fmt.Sprintf("m%d", i),
			Text:      fmt.Sprintf("hello %d", i),
			From:      domain.SenderUser,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.SaveMessage(ctx, "skillhive", msg))
	}

	reopened, err := NewJSONStorage(path)
	require.NoError(t, err)
	msgs, err := reopened.RecentMessages(ctx, "skillhive", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "m0", msgs[0].ID)
	assert.Equal(t, "m2", msgs[2].ID)
	assert.Equal(t, domain.SenderUser, msgs[0].From)
	assert.True(t, msgs[0].CreatedAt.Equal(base))
}

func TestRecentMessagesLimitKeepsNewest(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStorage(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveMessage(ctx, "skillhive", domain.Message{ID: fmt.Sprintf("m%d", i)}))
	}

	msgs, err := s.RecentMessages(ctx, "skillhive", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m3", msgs[0].ID)
	assert.Equal(t, "m4", msgs[1].ID)
}

func TestTranscriptIsBounded(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStorage(t)

	for i := 0; i < transcriptKeep+10; i++ {
		require.NoError(t, s.SaveMessage(ctx, "skillhive", domain.Message{ID: fmt.Sprintf("m%d", i)}))
	}

	msgs, err := s.RecentMessages(ctx, "skillhive", 0)
	require.NoError(t, err)
	assert.Len(t, msgs, transcriptKeep)
	assert.Equal(t, "m10", msgs[0].ID, "oldest messages are dropped first")
}

func TestFileIsNotWorldReadable(t *testing.T) {
	s, path := newTestStorage(t)
	require.NoError(t, s.SaveToken("skillhive", "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewJSONStorage(path)
	assert.Error(t, err)
}
