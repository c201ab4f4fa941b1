package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fentz26/taskview/internal/tui"
)

var (
	startDaemonFlag bool
	daemonFixtures  string
)

// daemonTasksPath is the only collection path the local daemon serves.
const daemonTasksPath = "/api/tasks"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive task viewer",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&startDaemonFlag, "start-daemon", false, "Start a local task API if the endpoint is unreachable (endpoint path must be /api/tasks)")
	tuiCmd.Flags().StringVar(&daemonFixtures, "daemon-fixtures", "", "Fixtures file for a daemon started by --start-daemon (otherwise it serves its existing database, empty on first run)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client := tui.NewClient(cfg.Endpoint, cfg.Timeout)

	if startDaemonFlag && !isDaemonRunning(client) {
		fmt.Println("⚡ Task API not running. Starting background service...")
		if err := startDaemon(client); err != nil {
			return fmt.Errorf("failed to start daemon: %w", err)
		}
	}

	app := tui.New(client, tui.Options{
		PageSize:   cfg.PageSize,
		PageWindow: cfg.PageWindow,
		Theme:      cfg.ThemeMode(),
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func isDaemonRunning(client *tui.Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	ok, err := client.CheckHealth(ctx)
	if err != nil {
		log.WithError(err).Debug("health check failed")
	}
	return ok
}

// daemonArgs returns the serve arguments for a local daemon answering
// endpoint. Endpoints the daemon cannot serve are rejected.
func daemonArgs(endpoint, fixtures string) ([]string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("cannot start a local daemon for %s: only http endpoints are served", endpoint)
	}
	if u.Path != daemonTasksPath {
		return nil, fmt.Errorf("cannot start a local daemon for %s: it serves tasks at %s", endpoint, daemonTasksPath)
	}

	args := []string{"serve", "--listen", u.Host}
	if fixtures != "" {
		args = append(args, "--fixtures", fixtures)
	}
	return args, nil
}

func startDaemon(client *tui.Client) error {
	args, err := daemonArgs(client.Endpoint(), daemonFixtures)
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, args...)
	// Detach process so it survives TUI exit
	configureDaemonProc(cmd)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return err
	}

	fmt.Print("   Waiting for daemon...")
	for i := 0; i < 20; i++ { // Wait up to 5 seconds
		if isDaemonRunning(client) {
			fmt.Println(" Done.")
			return nil
		}
		time.Sleep(250 * time.Millisecond)
		fmt.Print(".")
	}
	fmt.Println(" Timeout!")
	return fmt.Errorf("daemon started but API not reachable at %s", client.Endpoint())
}
