package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eveoh/mytimetable-api-client/config"
	"github.com/eveoh/mytimetable-api-client/formatter"
	"github.com/eveoh/mytimetable-api-client/mytimetable"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	noColor   bool

	cfg    *config.Configuration
	logger zerolog.Logger
	client *mytimetable.Client

	appVersion = "dev"
	appBuilt   = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mytimetable",
	Short: "Query a MyTimetable server from the command line",
	Long: `mytimetable is a CLI client for the MyTimetable REST API. It looks up the
upcoming events of users, searches timetables and lists the filter attributes
a timetable type can be narrowed down by.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			_ = client.Close()
		}
	},
}

// SetVersion sets the version reported by the version command
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuilt = buildTime
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mytimetable.properties)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored log output")

	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(timetablesCmd)
	rootCmd.AddCommand(timetableCmd)
	rootCmd.AddCommand(filterTypesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	logger = setupLogger(logLevel, logFormat, useColor())

	if cmd == versionCmd {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return nil
}

// connect creates the API client for commands that talk to the server
func connect() (*mytimetable.Client, error) {
	if client != nil {
		return client, nil
	}

	var err error
	client, err = mytimetable.NewClient(cfg, logger,
		mytimetable.WithUserAgent("mytimetable-cli/"+appVersion))
	if err != nil {
		return nil, fmt.Errorf("failed to create MyTimetable client: %w", err)
	}

	return client, nil
}

func newFormatter() *formatter.ConsoleFormatter {
	return formatter.NewConsoleFormatter(cfg)
}

func useColor() bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// setupLogger configures the zerolog logger
func setupLogger(level, format string, color bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(lvl)

	if format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
