package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/studysquad/studysquad/internal/datadir"
	"github.com/studysquad/studysquad/internal/llm"
	"github.com/studysquad/studysquad/internal/logger"
	"github.com/studysquad/studysquad/internal/progress"
	"github.com/studysquad/studysquad/internal/session"
	"github.com/studysquad/studysquad/internal/store"
)

// tuiAnnotation marks commands that take over the terminal. Their logs go
// to a file unless --log-file says otherwise.
const tuiAnnotation = "tui"

var rootCmd = &cobra.Command{
	Use:   "studysquad",
	Short: "Teman belajar AI di terminal",
	Long: `Study Squad: asisten belajar AI buat pelajar Indonesia.

Ngobrol santai soal materi pelajaran, minta soal latihan, kumpulin skor,
dan simpan progress belajar lo.`,
	Annotations:       map[string]string{tuiAnnotation: "true"},
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("progress", "", "Path to the progress JSON file (overrides STUDYSQUAD_PROGRESS)")
	pf.String("db", "", "Path to the SQLite audit database (overrides STUDYSQUAD_DB)")
	pf.String("log-level", "", "Log level (debug|info|warn|error) [default: info]")
	pf.String("log-file", "", "Write logs to this file")

	for _, name := range []string{"progress", "db", "log-level", "log-file"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
	viper.SetEnvPrefix("STUDYSQUAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and configures logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	// Variables already in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	logFile := viper.GetString("log-file")
	if logFile == "" && cmd.Annotations[tuiAnnotation] == "true" {
		dir, err := datadir.Dir()
		if err != nil {
			return err
		}
		logFile = filepath.Join(dir, "studysquad.log")
		if err := datadir.EnsureDir(logFile); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	return logger.Configure(viper.GetString("log-level"), logFile)
}

// resolveProgressPath returns the progress file path using --progress
// (highest priority), then STUDYSQUAD_PROGRESS, then the default XDG path.
func resolveProgressPath() (string, error) {
	if p := viper.GetString("progress"); p != "" {
		return p, datadir.EnsureDir(p)
	}
	return progress.DefaultPath()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYSQUAD_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if p := viper.GetString("db"); p != "" {
		return p, datadir.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openProgress() (*progress.Store, error) {
	path, err := resolveProgressPath()
	if err != nil {
		return nil, fmt.Errorf("resolve progress path: %w", err)
	}
	return progress.New(path), nil
}

// openEventRepo opens the audit database. Chatting must not depend on it,
// so any failure degrades to a repo that records nothing.
func openEventRepo() (store.EventRepo, func()) {
	dbPath, err := resolveDBPath()
	if err != nil {
		logger.Warn("Audit log disabled", "err", err)
		return store.NopEventRepo{}, func() {}
	}
	s, err := store.Open(dbPath)
	if err != nil {
		logger.Warn("Audit log disabled", "path", dbPath, "err", err)
		return store.NopEventRepo{}, func() {}
	}
	return s.EventRepo(), func() { s.Close() }
}

// newOrchestrator builds a fresh session against the configured provider.
func newOrchestrator(ctx context.Context, repo store.EventRepo) (*session.Orchestrator, error) {
	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), repo)
	if err != nil {
		return nil, err
	}
	return session.NewOrchestrator(session.NewState(), provider, session.DefaultConfig()), nil
}
