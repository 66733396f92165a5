// Command skillhive-agent is a headless client for the SkillHive platform:
// sign in, browse feeds, publish posts and comments, manage learning plans,
// and chat with the profile-editing assistant from the terminal or Telegram.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skillhive-agent/internal/config"
	"skillhive-agent/internal/core/ports"
	"skillhive-agent/internal/feed"
	"skillhive-agent/internal/session"
	"skillhive-agent/internal/sites/skillhive"
	"skillhive-agent/internal/storage"
)

var (
	verbose bool

	cfg     config.Config
	logger  *zap.Logger
	store   ports.Storage
	sess    *session.Session
	backend ports.Backend
	builder *feed.Builder
)

var rootCmd = &cobra.Command{
	Use:   "skillhive-agent",
	Short: "Headless SkillHive client and profile assistant",
	Long: `skillhive-agent talks to the SkillHive REST backend: authentication,
posts, comments, likes, follows, learning plans, media, notifications,
and a conversational assistant that edits your profile fields.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		store, err = openStorage(cmd.Context())
		if err != nil {
			return err
		}

		sess = session.New(store, "skillhive", logger)
		client := skillhive.NewClient(cfg.APIBaseURL, sess, logger)
		backend = client
		builder = feed.NewBuilder(backend, logger)

		if err := sess.Restore(cmd.Context(), backend); err != nil &&
			!errors.Is(err, session.ErrNotAuthenticated) &&
			!errors.Is(err, skillhive.ErrUnauthorized) {
			logger.Warn("could not restore session", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openStorage prefers Postgres when DATABASE_URL is set, falling back to the
// JSON file store under the data dir.
func openStorage(ctx context.Context) (ports.Storage, error) {
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresStorage(ctx, cfg.DatabaseURL)
		if err == nil {
			return pg, nil
		}
		fmt.Fprintf(os.Stderr, "⚠️  postgres unavailable (%v), using file storage\n", err)
	}
	return storage.NewJSONStorage(filepath.Join(cfg.DataDir, "storage.json"))
}

// requireUser is the auth wall shared by every command that needs identity.
func requireUser() (string, error) {
	if !sess.Authenticated() {
		return "", errors.New("not signed in. Run 'skillhive-agent login' first")
	}
	return sess.UserID(), nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
