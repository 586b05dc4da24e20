package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studysquad/studysquad/internal/app"
	"github.com/studysquad/studysquad/internal/logger"
	"github.com/studysquad/studysquad/internal/markdown"
)

var chatCmd = &cobra.Command{
	Use:         "chat",
	Short:       "Mulai sesi belajar interaktif (default)",
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the stores, builds the session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	progressStore, err := openProgress()
	if err != nil {
		return err
	}

	eventRepo, closeRepo := openEventRepo()
	defer closeRepo()

	orch, err := newOrchestrator(ctx, eventRepo)
	if err != nil {
		return fmt.Errorf("set up LLM provider: %w", err)
	}

	logger.Info("Study session started", "session", orch.State().ID(), "progress", progressStore.Path())
	defer func() {
		state := orch.State()
		logger.Info("Study session ended", "session", state.ID(), "messages", state.Len(), "score", state.Score())
	}()

	return app.Run(app.Options{
		Orchestrator: orch,
		Progress:     progressStore,
		Renderer:     markdown.New("dark"),
		Context:      ctx,
	})
}
