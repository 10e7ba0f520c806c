package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sitegen/config"
	"sitegen/internal/ai"
	"sitegen/internal/builder"
	"sitegen/internal/logging"
	"sitegen/internal/report"
	"sitegen/internal/sources"
)

const defaultQuery = "Generate me a plumbing site"

var version = "dev"

// newModel builds the model client from config. Tests replace it.
var newModel = func(cfg config.Config, logger *slog.Logger) ai.Model {
	return ai.NewGenerator(cfg.GeneratorOptions(logger))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		query     string
		configDir string
	)
	root := &cobra.Command{
		Use:   "sitegen",
		Short: "Generate an Astro + TailwindCSS website from a one-line description",
		Long: `sitegen asks a language model, in five sequential stages, for a site's pages,
a layout guide and a structured layout per page, a build plan, and the code
for every task in the plan. The default command runs one generation and
prints the collected code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(configDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printer := report.NewPrinter(cmd.OutOrStdout())
			b := a.newBuilder(printer)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := b.Run(ctx, query)
			if err != nil {
				printer.Error(err)
				return err
			}
			printer.Result(res)
			return nil
		},
	}
	root.Flags().StringVarP(&query, "query", "q", defaultQuery, "what the site should be")
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding config.yaml")

	root.AddCommand(newServeCmd(&configDir), newMCPCmd(&configDir))
	return root
}

// app is the configured dependency set shared by every command.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	loader *sources.Loader
	model  ai.Model
	call   ai.CallOptions
}

// setup loads .env and config, then builds the logger, sources and model.
// Logs go to logOut so stdout stays free for results and MCP traffic.
func setup(configDir string, logOut io.Writer) (*app, error) {
	// .env is optional; it must be loaded before viper reads the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(logOut, "Warning: error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(logOut, cfg.LogLevel)
	if cfg.IsProduction() {
		logger = logging.NewJSON(logOut, cfg.LogLevel)
	}
	slog.SetDefault(logger)

	call, err := cfg.CallOptions(logger)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		loader: sources.NewLoader(nil, cfg.StyleGuidePath, cfg.LayoutTemplatePath),
		model:  newModel(cfg, logger),
		call:   call,
	}, nil
}

func (a *app) newBuilder(observer builder.Observer) *builder.Builder {
	return builder.NewBuilder(builder.Options{
		Model:           a.model,
		Loader:          a.loader,
		Call:            a.call,
		FeedLayoutGuide: a.cfg.FeedLayoutGuide,
		Logger:          a.logger,
		Observer:        observer,
	})
}
