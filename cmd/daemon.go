package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ljmonteiro/companheiro/internal/config"
	"github.com/ljmonteiro/companheiro/internal/daemon"
	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/notify"
	"github.com/ljmonteiro/companheiro/internal/voice"
)

// Daemon command flags.
var (
	daemonStartFlagForeground bool
	daemonLogsFlagTail        int
	daemonLogsFlagFollow      bool
	daemonInstallFlagForce    bool
)

// daemonCmd represents the daemon command.
var daemonCmd = &cobra.Command{
	Use:     "daemon [command]",
	Aliases: []string{"d", "bg", "service"},
	Short:   "Manage the reminder daemon",
	Long: `Manage the Companheiro reminder daemon.

The daemon checks the medication and appointment lists once a minute and
sends desktop notifications when something is due: at the exact time of a
medication, and one hour and ten minutes before an appointment.

Examples:
  companheiro daemon start
  companheiro daemon status
  companheiro daemon stop
  companheiro daemon logs --tail 20`,
	RunE: runDaemonStatus,
}

// daemonStartCmd starts the daemon.
var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reminder daemon",
	Long: `Start the Companheiro reminder daemon.

Examples:
  companheiro daemon start           # Start in background
  companheiro daemon start -f        # Start in foreground (for debugging)`,
	RunE: runDaemonStart,
}

// daemonStopCmd stops the daemon.
var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the reminder daemon",
	RunE:  runDaemonStop,
}

// daemonStatusCmd shows daemon status.
var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

// daemonLogsCmd shows daemon logs.
var daemonLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show daemon logs",
	RunE:  runDaemonLogs,
}

// daemonTestCmd sends a test notification.
var daemonTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	RunE:  runDaemonTest,
}

// daemonInstallCmd installs the daemon as a system service.
var daemonInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the daemon as a system service",
	Long: `Install the daemon as a system service so it starts on login.

Uses launchd on macOS and a systemd user unit on Linux.`,
	RunE: runDaemonInstall,
}

// daemonUninstallCmd removes the system service.
var daemonUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the daemon system service",
	RunE:  runDaemonUninstall,
}

func init() {
	daemonStartCmd.Flags().BoolVarP(&daemonStartFlagForeground, "foreground", "f", false,
		"Run in foreground (don't daemonize)")

	daemonLogsCmd.Flags().IntVarP(&daemonLogsFlagTail, "tail", "n", 20,
		"Number of lines to show")
	daemonLogsCmd.Flags().BoolVar(&daemonLogsFlagFollow, "follow", false,
		"Follow log output (like tail -f)")

	daemonInstallCmd.Flags().BoolVar(&daemonInstallFlagForce, "force", false,
		"Force reinstall if already installed")

	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonLogsCmd)
	daemonCmd.AddCommand(daemonTestCmd)
	daemonCmd.AddCommand(daemonInstallCmd)
	daemonCmd.AddCommand(daemonUninstallCmd)

	rootCmd.AddCommand(daemonCmd)
}

// runDaemonStart handles the daemon start command.
func runDaemonStart(cmd *cobra.Command, args []string) error {
	if !daemonStartFlagForeground {
		// Background mode. The runtime context is not initialized here so
		// the child process can take the store lock.
		d := daemon.NewDaemon(nil, nil, config.Global)
		d.SetDebug(flagDebug)

		if d.IsRunning() {
			status := d.GetStatus()
			return fmt.Errorf("daemon is already running (PID: %d)", status.PID)
		}

		pid, err := d.StartBackground()
		if err != nil {
			return err
		}

		fmt.Println("Starting companheiro daemon...")
		fmt.Printf("Daemon started (PID: %d)\n", pid)
		return nil
	}

	// Foreground mode. The runtime context owns the store, the session and
	// the notification dispatcher.
	d := daemon.NewDaemon(ctx.Session, ctx.Dispatcher, ctx.Config)
	d.SetDebug(ctx.Debug)

	if d.IsRunning() {
		status := d.GetStatus()
		return fmt.Errorf("daemon is already running (PID: %d)", status.PID)
	}

	if !ctx.IsJSON() {
		ctx.Formatter.Printf("Starting companheiro daemon (foreground mode)...\n")
	}
	return d.Start(cmd.Context())
}

// runDaemonStop handles the daemon stop command.
func runDaemonStop(cmd *cobra.Command, args []string) error {
	d := daemon.NewDaemon(nil, nil, config.Global)

	if !d.IsRunning() {
		fmt.Println("Daemon is not running")
		return nil
	}

	status := d.GetStatus()
	pid := status.PID

	fmt.Println("Stopping companheiro daemon...")

	if err := d.Stop(); err != nil {
		return err
	}

	fmt.Printf("Daemon stopped (was PID: %d)\n", pid)
	return nil
}

// runDaemonStatus handles the daemon status command.
func runDaemonStatus(cmd *cobra.Command, args []string) error {
	d := daemon.NewDaemon(nil, nil, config.Global)
	status := d.GetStatus()

	if flagFormat == "json" {
		out := map[string]interface{}{
			"status": "stopped",
		}
		if status.Running {
			out["status"] = "running"
			out["pid"] = status.PID
			out["uptime"] = status.Uptime
			if status.Metrics != nil {
				out["metrics"] = status.Metrics
			}
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	fmt.Println("Companheiro Daemon Status")
	fmt.Println("")

	if status.Running {
		fmt.Printf("  Status:    running\n")
		fmt.Printf("  PID:       %d\n", status.PID)
		fmt.Printf("  Uptime:    %s\n", status.Uptime)
		if status.Metrics != nil {
			fmt.Printf("  Checks:    %d\n", status.Metrics.ChecksRunTotal)
			fmt.Printf("  Alerts:    %d sent, %d failed\n",
				status.Metrics.AlertsSentTotal, status.Metrics.AlertsFailedTotal)
		}
	} else {
		fmt.Printf("  Status:    stopped\n")
		fmt.Println("")
		fmt.Println("Start with: companheiro daemon start")
	}

	return nil
}

// runDaemonLogs handles the daemon logs command.
func runDaemonLogs(cmd *cobra.Command, args []string) error {
	logPath := daemon.GetLogPath()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Println("No log file found.")
		fmt.Printf("Log path: %s\n", logPath)
		return nil
	}

	if daemonLogsFlagFollow {
		return followLogs(cmd.Context(), logPath)
	}

	lines, err := tailFile(logPath, daemonLogsFlagTail)
	if err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Println(line)
	}

	return nil
}

// runDaemonTest sends a test alert through the notification path.
func runDaemonTest(cmd *cobra.Command, args []string) error {
	cfg := config.Global
	speaker, _ := voice.Detect(cfg.Voice)
	dispatcher := notify.NewDispatcher(notify.Detect(), speaker)

	alert := &model.Alert{
		Type:      model.AlertTest,
		Title:     "Companheiro",
		Body:      "Notificação de teste. Tudo funcionando!",
		Spoken:    "Notificação de teste. Tudo funcionando!",
		Timestamp: time.Now(),
	}

	result := dispatcher.Deliver(alert, speaker.Available())
	if !result.Notified {
		fmt.Println("Notification could not be delivered.")
		fmt.Println("Check that a desktop notification service is available.")
		return nil
	}

	fmt.Println("Test notification sent.")
	return nil
}

// runDaemonInstall handles the daemon install command.
func runDaemonInstall(cmd *cobra.Command, args []string) error {
	mgr, err := daemon.NewServiceManager()
	if err != nil {
		return err
	}
	mgr.SetDebug(flagDebug)

	if mgr.IsInstalled() && !daemonInstallFlagForce {
		fmt.Println("Service is already installed.")
		fmt.Println("Use --force to reinstall.")
		return nil
	}

	if err := mgr.Install(); err != nil {
		return err
	}

	fmt.Println("Service installed. The daemon will start on login.")
	return nil
}

// runDaemonUninstall handles the daemon uninstall command.
func runDaemonUninstall(cmd *cobra.Command, args []string) error {
	mgr, err := daemon.NewServiceManager()
	if err != nil {
		return err
	}
	mgr.SetDebug(flagDebug)

	if !mgr.IsInstalled() {
		fmt.Println("Service is not installed.")
		return nil
	}

	if err := mgr.Uninstall(); err != nil {
		return err
	}

	fmt.Println("Service removed.")
	return nil
}

// tailFile reads the last n lines from a file.
func tailFile(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// followLogs follows the log file until interrupted.
func followLogs(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// Seek to end
	file.Seek(0, 2)

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err == nil {
			fmt.Print(line)
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(500 * time.Millisecond):
		}
	}
}
