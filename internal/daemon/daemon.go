package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/ljmonteiro/companheiro/internal/config"
	"github.com/ljmonteiro/companheiro/internal/logging"
	"github.com/ljmonteiro/companheiro/internal/notify"
	"github.com/ljmonteiro/companheiro/internal/scheduler"
	"github.com/ljmonteiro/companheiro/internal/session"
)

// Daemon manages the background reminder process. It owns the scheduler
// lifecycle: the minute tick starts with the daemon and stops with it.
type Daemon struct {
	pidFile    *PIDFile
	scheduler  *scheduler.Scheduler
	session    *session.Session
	dispatcher *notify.Dispatcher
	metrics    *Metrics
	cfg        *config.RuntimeConfig
	startedAt  time.Time
	debug      bool
}

// Status represents the daemon status.
type Status struct {
	Running   bool             `json:"running"`
	PID       int              `json:"pid,omitempty"`
	StartedAt time.Time        `json:"started_at,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Metrics   *MetricsSnapshot `json:"metrics,omitempty"`
}

// NewDaemon creates a new daemon manager over the loaded session.
func NewDaemon(sess *session.Session, dispatcher *notify.Dispatcher, cfg *config.RuntimeConfig) *Daemon {
	return &Daemon{
		pidFile:    NewPIDFile(),
		session:    sess,
		dispatcher: dispatcher,
		metrics:    NewMetrics(),
		cfg:        cfg,
	}
}

// SetDebug enables debug mode.
func (d *Daemon) SetDebug(debug bool) {
	d.debug = debug
}

// GetStatus returns the current daemon status.
func (d *Daemon) GetStatus() *Status {
	status := &Status{}

	pid := d.pidFile.GetRunningPID()
	if pid > 0 {
		status.Running = true
		status.PID = pid

		if state, err := d.readState(); err == nil {
			status.StartedAt = state.StartedAt
			status.Uptime = formatUptime(time.Since(state.StartedAt))
			status.Metrics = state.Metrics
		}
	}

	return status
}

// IsRunning returns true if the daemon is running.
func (d *Daemon) IsRunning() bool {
	return d.pidFile.IsRunning()
}

// Start starts the daemon in the foreground and blocks until a shutdown
// signal arrives or the context is cancelled.
func (d *Daemon) Start(ctx context.Context) error {
	if d.IsRunning() {
		return ErrAlreadyRunning
	}

	if err := d.pidFile.Write(); err != nil {
		return err
	}

	d.startedAt = time.Now()
	if err := d.writeState(&State{StartedAt: d.startedAt}); err != nil {
		d.pidFile.Remove()
		return err
	}

	checker := scheduler.NewReminderChecker(d.session, d.dispatcher)
	checker.SetRecorder(stateRecorder{d})

	d.scheduler = scheduler.NewScheduler(checker, d.cfg.Scheduler)
	if err := d.scheduler.Start(); err != nil {
		d.pidFile.Remove()
		d.removeState()
		return err
	}

	sigHandler := NewSignalHandler()
	sigHandler.Setup()
	defer sigHandler.Cleanup()

	logging.Info("daemon started", "pid", os.Getpid())

	sig := sigHandler.Wait(ctx)
	if sig != nil {
		logging.Info("received signal", "signal", sig.String())
	}

	d.scheduler.Stop()
	d.pidFile.Remove()
	d.removeState()

	return nil
}

// Metrics returns the daemon's counters.
func (d *Daemon) Metrics() *Metrics {
	return d.metrics
}

// NextRun returns the next scheduled reminder tick, or the zero time when
// the scheduler is not running in this process.
func (d *Daemon) NextRun() time.Time {
	if d.scheduler == nil {
		return time.Time{}
	}
	return d.scheduler.NextRun()
}

// StartBackground starts the daemon in a detached background process.
func (d *Daemon) StartBackground() (int, error) {
	if d.IsRunning() {
		return d.pidFile.GetRunningPID(), ErrAlreadyRunning
	}

	executable, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to get executable path: %w", err)
	}

	args := []string{"daemon", "start", "--foreground"}
	if d.debug {
		args = append(args, "--debug")
	}

	cmd := exec.Command(executable, args...)
	cmd.Stdin = nil

	logPath := GetLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			cmd.Stdout = logFile
			cmd.Stderr = logFile
		}
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon: %w", err)
	}

	// Give the child a moment to write its PID file.
	time.Sleep(d.cfg.Daemon.StartupWait)

	if !d.pidFile.IsRunning() {
		if errMsg := d.readLastLogError(); errMsg != "" {
			return 0, fmt.Errorf("daemon failed to start: %s", errMsg)
		}
		return 0, fmt.Errorf("daemon failed to start (check logs: %s)", logPath)
	}

	return cmd.Process.Pid, nil
}

// readLastLogError reads the last few lines of the log file to find error messages.
func (d *Daemon) readLastLogError() string {
	data, err := os.ReadFile(GetLogPath())
	if err != nil {
		return ""
	}

	lines := strings.Split(string(data), "\n")
	start := len(lines) - 10
	if start < 0 {
		start = 0
	}

	for i := len(lines) - 1; i >= start; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.Contains(strings.ToLower(line), "error") ||
			strings.Contains(line, "failed to") {
			return line
		}
	}
	return ""
}

// Stop stops the running daemon.
func (d *Daemon) Stop() error {
	pid := d.pidFile.GetRunningPID()
	if pid == 0 {
		return ErrNotRunning
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(os.Interrupt); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to stop daemon: %w", err)
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := process.Wait()
		done <- err
	}()

	select {
	case <-done:
	case <-time.After(d.cfg.Daemon.KillTimeout):
		process.Kill()
	}

	d.pidFile.Remove()
	d.removeState()

	return nil
}

// State holds persistent daemon state.
type State struct {
	StartedAt time.Time        `json:"started_at"`
	Metrics   *MetricsSnapshot `json:"metrics,omitempty"`
}

// stateRecorder counts checks and alerts and persists the counters to the
// state file, so that status queries from other processes can report them.
type stateRecorder struct {
	d *Daemon
}

func (r stateRecorder) RecordCheck(at time.Time) {
	r.d.metrics.RecordCheck(at)
	snap := r.d.metrics.Snapshot()
	if err := r.d.writeState(&State{StartedAt: r.d.startedAt, Metrics: &snap}); err != nil {
		logging.Warn("failed to persist daemon state", logging.KeyError, err)
	}
}

func (r stateRecorder) RecordAlert(delivered bool) {
	r.d.metrics.RecordAlert(delivered)
}

// getStatePath returns the path to the state file.
func getStatePath() string {
	return filepath.Join(xdg.StateHome, AppName, "daemon.json")
}

// writeState writes daemon state to file.
func (d *Daemon) writeState(state *State) error {
	path := getStatePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// readState reads daemon state from file.
func (d *Daemon) readState() (*State, error) {
	data, err := os.ReadFile(getStatePath())
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

// removeState removes the state file.
func (d *Daemon) removeState() {
	if err := os.Remove(getStatePath()); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove daemon state file", logging.KeyError, err, "path", getStatePath())
	}
}

// GetLogPath returns the path to the daemon log file.
func GetLogPath() string {
	return filepath.Join(xdg.StateHome, AppName, "daemon.log")
}

// formatUptime formats a duration as uptime.
func formatUptime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	if hours > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dd", days)
}
