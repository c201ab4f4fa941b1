package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fentz26/taskview/internal/config"
	"github.com/fentz26/taskview/internal/server"
)

// version is set at build time via -ldflags.
var version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "taskview",
	Short: "Taskview - terminal task list viewer",
	Long:  `Taskview retrieves a task collection over HTTP and presents it as a searchable, paginated card grid.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd.Name())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogging()
	},
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	endpoint   string
	configPath string
	pageSize   int
	logFile    string
	logLevel   string

	// logOut is the open --log-file handle, if any.
	logOut *os.File
)

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Task collection URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.taskview/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Tasks per page (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	server.Version = version

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging points logrus at --log-file. Without one, the interactive
// viewer discards logs so they never reach the terminal it draws on.
func setupLogging(command string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch {
	case logFile != "":
		if err := closeLogging(); err != nil {
			return err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logOut = f
		log.SetOutput(f)
		log.SetFormatter(&log.JSONFormatter{})
	case command == "tui":
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return nil
}

// closeLogging closes the --log-file handle and sends logs back to stderr.
func closeLogging() error {
	if logOut == nil {
		return nil
	}
	f := logOut
	logOut = nil
	log.SetOutput(os.Stderr)
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromHome()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if flags.Changed("page-size") {
		cfg.PageSize = pageSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func main() {
	err := rootCmd.Execute()
	closeLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
