package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/abhisek/cognilevel/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cognilevel",
	Short: "Adaptive cognitive-level assessment",
	Long: "CogniLevel asks adaptive questions in a technology domain and estimates " +
		"your cognitive level (Remember, Understand, Apply, Analyze, Evaluate).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssess(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COGNILEVEL_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringSlice("bank", nil, "Question bank YAML file or directory to load (repeatable)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (the interactive UI discards logs otherwise)")
	addAssessFlags(rootCmd)

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then COGNILEVEL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store at the resolved database path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newLogger builds the process logger from --log-level and --log-file.
// Without a log file, logs go to stderr unless the terminal UI owns it.
// The returned close func releases the log file.
func newLogger(cmd *cobra.Command, interactive bool) (*slog.Logger, func(), error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(levelName))); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q", levelName)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	} else if interactive {
		w = io.Discard
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
