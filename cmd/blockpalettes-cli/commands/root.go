package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blockpalettes/cmd/blockpalettes-cli/globals"
	"blockpalettes/pkg/blockpalettes"
	"blockpalettes/pkg/telemetry"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	baseUrl    string
	timeout    time.Duration
	debug      bool
	dumpHttp   string

	otel telemetry.Telemetry
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "blockpalettes-cli",
		Short:         "blockpalettes-cli is a CLI for browsing Minecraft block palettes on blockpalettes.com.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a json5 config file, defaults to the nearest blockpalettes.json5.")
	flags.StringVar(&opts.baseUrl, "base-url", "", "Base url of the Block Palettes website.")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Timeout of a single request.")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging.")
	flags.StringVar(&opts.dumpHttp, "dump-http", "", "Write every HTTP request and response to this directory.")

	rootCmd.AddCommand(
		newSearchCmd(),
		newPopularCmd(),
		newPalettesCmd(),
		newPaletteCmd(),
		newSimilarCmd(),
		newScrapeCmd(),
	)

	return rootCmd, opts
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	telemetry.InitSlog(o.debug)

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseUrl = o.baseUrl
	}
	timeout := cfg.timeout()
	if flags.Changed("timeout") {
		timeout = o.timeout
	}

	o.otel, err = telemetry.Setup(cmd.Context(), "blockpalettes-cli", cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}

	clientOpts := blockpalettes.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		Timeout:          timeout,
		UserAgent:        cfg.UserAgent,
		CloudflareBypass: cfg.CloudflareBypass,
	}
	if o.dumpHttp != "" {
		output, err := telemetry.NewFilesystemOutput(o.dumpHttp)
		if err != nil {
			return fmt.Errorf("create http dump directory: %w", err)
		}
		clientOpts.InstrumentOutput = output
	}

	client, err := blockpalettes.NewClient(clientOpts)
	if err != nil {
		return err
	}
	slog.Debug("client initialized", "base_url", client.BaseUrl.String(), "timeout", timeout)

	cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{Client: client}))
	return nil
}

func ExecuteContext(ctx context.Context) error {
	rootCmd, opts := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownErr := opts.otel.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	return err
}
