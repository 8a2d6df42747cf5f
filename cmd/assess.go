package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/abhisek/cognilevel/internal/app"
	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/classifier"
	"github.com/abhisek/cognilevel/internal/llm"
	"github.com/abhisek/cognilevel/internal/questionbank"
	"github.com/abhisek/cognilevel/internal/store"
)

var assessCmd = &cobra.Command{
	Use:   "assess [domain]",
	Short: "Run an adaptive assessment",
	Long: "Run an adaptive assessment in the given domain. Without a domain the " +
		"interactive domain picker is shown.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var domain string
		if len(args) == 1 {
			domain = args[0]
		}
		return runAssess(cmd, domain)
	},
}

func init() {
	addAssessFlags(assessCmd)
}

func addAssessFlags(c *cobra.Command) {
	def := assess.DefaultConfig()
	c.Flags().Int("max-questions", def.MaxQuestions, "Maximum number of questions")
	c.Flags().Float64("threshold", def.ConfidenceThreshold, "Confidence target shown on the report (sessions still stop early above 85%)")
	c.Flags().String("strategy", string(def.Strategy), "Question selection: conservative, balanced, aggressive")
	c.Flags().Uint64("seed", 0, "Seed for question selection (0 = time based)")
	c.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	c.Flags().Bool("plain", false, "Line-based prompts on stdin/stdout instead of the interactive UI")
	c.Flags().Bool("json", false, "With --plain, print the final report as JSON")
}

// configFromFlags builds the session configuration from the assess flags.
func configFromFlags(cmd *cobra.Command) (assess.Config, error) {
	cfg := assess.DefaultConfig()
	cfg.MaxQuestions, _ = cmd.Flags().GetInt("max-questions")
	cfg.ConfidenceThreshold, _ = cmd.Flags().GetFloat64("threshold")

	name, _ := cmd.Flags().GetString("strategy")
	strategy, err := assess.ParseStrategy(name)
	if err != nil {
		return cfg, err
	}
	cfg.Strategy = strategy
	return cfg, cfg.Validate()
}

// loadBank returns the seeded question bank extended with every --bank path.
func loadBank(cmd *cobra.Command, logger *slog.Logger) (*questionbank.Repository, error) {
	bank := questionbank.NewSeeded()
	paths, _ := cmd.Flags().GetStringSlice("bank")
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("question bank: %w", err)
		}
		if info.IsDir() {
			if _, err := bank.LoadDir(path, logger); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := bank.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return bank, nil
}

// buildClassifier wires the LLM-backed classification client when a
// provider is configured. Without one, answers are scored heuristically.
func buildClassifier(ctx context.Context, repo store.EventRepo, logger *slog.Logger) (*classifier.Classifier, bool) {
	provider, cfg, err := llm.NewProviderFromEnv(ctx, store.NewLLMEventSink(repo), logger)
	if err != nil {
		logger.Warn("LLM provider not configured, using heuristic scoring", "error", err)
		return classifier.New(nil, classifier.WithLogger(logger)), false
	}

	clientCfg := classifier.DefaultLLMClientConfig()
	if cfg.Timeout > 0 {
		clientCfg.Timeout = cfg.Timeout
	}
	client := classifier.NewLLMClient(provider, clientCfg)
	return classifier.New(client, classifier.WithLogger(logger)), true
}

func runAssess(cmd *cobra.Command, domain string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	plain, _ := cmd.Flags().GetBool("plain")

	logger, closeLog, err := newLogger(cmd, !plain)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	repo := st.EventRepo()

	bank, err := loadBank(cmd, logger)
	if err != nil {
		return err
	}
	if domain != "" && bank.Count(domain) == 0 {
		return fmt.Errorf("no questions for domain %q (see: cognilevel domains)", domain)
	}

	cls, llmConfigured := buildClassifier(ctx, repo, logger)

	opts := []assess.Option{
		assess.WithRecorder(store.NewSessionRecorder(repo)),
		assess.WithLogger(logger),
	}
	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		opts = append(opts, assess.WithRandom(assess.NewRandom(seed)))
	}
	engine := assess.NewEngine(bank, cls, opts...)

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		stop := serveMetrics(addr, logger)
		defer stop()
	}

	if plain {
		if domain == "" {
			return errors.New("--plain requires a domain argument")
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return runPlain(ctx, engine, domain, cfg, os.Stdin, os.Stdout, asJSON)
	}

	return app.Run(app.Options{
		Catalog:       bank,
		Engine:        engine,
		Config:        cfg,
		Events:        repo,
		Domain:        domain,
		LLMConfigured: llmConfigured,
	})
}

// serveMetrics exposes the Prometheus registry on addr until the returned
// func is called.
func serveMetrics(addr string, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
