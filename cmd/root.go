package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/velikanov/deezgrab/internal/app"
	"github.com/velikanov/deezgrab/internal/config"
	"github.com/velikanov/deezgrab/internal/logger"
	"github.com/velikanov/deezgrab/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "deezgrab [flags] {track}",
		Short: "Download a single track from Deezer.",
		Long: `Deezgrab is a CLI tool for downloading a single track from Deezer.

A track can be referenced by:
- A numeric track ID (e.g. 3135556)
- A track URL (e.g. https://www.deezer.com/track/3135556)
- A shared short link (e.g. https://link.deezer.com/s/...)

Authentication uses the long-lived 'arl' browser cookie, supplied via the
configuration file or the ` + config.ARLTokenEnvVar + ` environment variable.`,
		Version:          version.Full(),
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.Uint8P(
		"quality",
		"q",
		0,
		"preferred audio quality: 1 = MP3, 128 Kbps, 2 = MP3, 256 Kbps, 3 = MP3, 320 Kbps.")

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to save the downloaded file (the path will be created if it doesn't exist).")

	rootCmdFlags.BoolP(
		"replace",
		"r",
		true,
		"replace the file if it already exists (pass --replace=false to keep it).")

	rootCmdFlags.StringP(
		"speed-limit",
		"s",
		"",
		"set download speed limit, for example: 500 kbps, 1 mbps, 1.5 mbps.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	// Full validation happens later (the auth command must work without a
	// credential), but the log level should apply as early as possible.
	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		appConfig.ParsedLogLevel = level

		logger.SetLevel(level)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("quality"); flag != nil && flag.Changed {
		cfg.Quality, _ = flags.GetUint8("quality")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("replace"); flag != nil && flag.Changed {
		cfg.ReplaceTracks, _ = flags.GetBool("replace")
	}

	if flag := flags.Lookup("speed-limit"); flag != nil && flag.Changed {
		cfg.DownloadSpeedLimit, _ = flags.GetString("speed-limit")
	}

	return config.ValidateConfig(cfg)
}
