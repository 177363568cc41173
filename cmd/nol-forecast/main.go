package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/nol-forecast/internal/config"
	"github.com/iwvelando/nol-forecast/internal/federal"
	"github.com/iwvelando/nol-forecast/internal/forecast"
	"github.com/iwvelando/nol-forecast/internal/server"
	"github.com/iwvelando/nol-forecast/pkg/constants"
	"github.com/iwvelando/nol-forecast/pkg/output"
	"github.com/iwvelando/nol-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type simulateOptions struct {
	configLocation string
	outputFormat   string
	logLevel       string
	calculator     string
}

type serveOptions struct {
	serverConfig string
	address      string
	logLevel     string
	calculator   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "nol-forecast",
		Short:        "Project excess business loss limits and NOL carryforwards across tax years",
		SilenceUsage: true,
	}
	root.AddCommand(newSimulateCommand(), newServeCommand(), newVersionCommand())
	return root
}

func newSimulateCommand() *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the carryforward simulation for every active scenario in a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.calculator, "calculator", constants.CalculatorSimplified, "return calculator: simplified, linear")
	return cmd
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&opts.address, "address", "", "listen address override")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.calculator, "calculator", constants.CalculatorSimplified, "return calculator: simplified, linear")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// adapterFor maps a calculator name to an adapter. The simplified calculator
// is returned as nil so it gets built from each configuration's standard
// deduction.
func adapterFor(calculator string) (federal.Adapter, error) {
	if calculator == "" {
		calculator = constants.CalculatorSimplified
	}
	if err := validation.ValidateCalculator(calculator); err != nil {
		return nil, err
	}
	if calculator == constants.CalculatorLinear {
		return federal.Linear, nil
	}
	return nil, nil
}

func runSimulate(opts simulateOptions, stdout io.Writer) error {
	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", opts.configLocation, err)
		return err
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(), zap.String("op", "main.simulate"))
		return err
	}

	adapter, err := adapterFor(opts.calculator)
	if err != nil {
		logger.Error(err.Error(), zap.String("op", "main.simulate"))
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.simulate"),
		)
	}

	results, err := forecast.GetForecast(logger, *conf, adapter)
	if err != nil {
		logger.Error("failed to compute forecast",
			zap.String("op", "main.simulate"),
			zap.Error(err),
		)
		return err
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(stdout, results)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(stdout, results); err != nil {
			logger.Error("failed to write csv output",
				zap.String("op", "main.simulate"),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := server.LoadConfig(opts.serverConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", opts.serverConfig, err)
		return err
	}
	if opts.address != "" {
		cfg.Address = opts.address
	}

	logger, err := initializeLogger(cfg.Logging, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	adapter, err := adapterFor(opts.calculator)
	if err != nil {
		logger.Error(err.Error(), zap.String("op", "main.serve"))
		return err
	}
	var handlerOpts []server.Option
	if adapter != nil {
		handlerOpts = append(handlerOpts, server.WithAdapter(adapter))
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, cfg.UploadSizeBytes(), version, handlerOpts...),
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.String("op", "main.serve"), zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down server", zap.String("op", "main.serve"))
	return srv.Shutdown(shutdownCtx)
}
