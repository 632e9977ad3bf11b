// Package cmd provides the CLI commands for Companheiro.
package cmd

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/logging"
	"github.com/ljmonteiro/companheiro/internal/output"
	"github.com/ljmonteiro/companheiro/internal/runtime"
	"github.com/ljmonteiro/companheiro/internal/validate"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "companheiro",
	Short: "Companheiro de rotina para a terceira idade",
	Long: `Companheiro keeps track of daily medications and appointments,
reminds you when they are due and offers a friendly chat companion.

Examples:
  companheiro med add Losartana 8h
  companheiro appt add "Consulta cardiologista" amanhã 14:00
  companheiro chat "Bom dia!"
  companheiro daemon start
  companheiro dashboard`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug {
			logging.InitDebug()
		}

		if skipRuntime(cmd) {
			return nil
		}

		// Parse format flag
		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		// Parse color flag
		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: runHome,
}

// skipRuntime reports whether cmd runs without the shared runtime context.
// Daemon management commands must not open the local store: the running
// daemon process holds the store lock.
func skipRuntime(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "completion", "help", "version":
		return true
	}
	if parent := cmd.Parent(); parent != nil && parent.Name() == "daemon" {
		return !(cmd.Name() == "start" && daemonStartFlagForeground)
	}
	return cmd.Name() == "daemon"
}

// runHome shows the home view: greeting, medications and appointments.
func runHome(cmd *cobra.Command, args []string) error {
	profile := ctx.Session.Profile()

	if profile.FirstRun() && ctx.IsCLI() && isatty.IsTerminal(os.Stdin.Fd()) {
		name, err := promptFirstRun()
		if err != nil {
			return err
		}
		if name != "" {
			ctx.Session.SetName(cmd.Context(), name)
			profile = ctx.Session.Profile()
		}
	}

	meds := ctx.Session.Medications()
	appts := ctx.Session.Appointments()
	now := time.Now()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"profile":      output.NewProfileResponse(profile),
			"medications":  output.NewMedicationsResponse(meds),
			"appointments": output.NewAppointmentsResponse(appts, now),
		})
	}

	cli := ctx.CLIFormatter()
	if profile.Name != "" {
		cli.Title("Olá, " + profile.Name + "!")
	} else {
		cli.Title("Olá!")
	}
	ctx.Formatter.Println("")
	cli.PrintMedications(meds)
	ctx.Formatter.Println("")
	cli.PrintAppointments(appts, now)
	ctx.Formatter.Println("")
	cli.PrintActivities()
	return nil
}

// promptFirstRun asks for the user's name on the first interactive run.
func promptFirstRun() (string, error) {
	ctx.Formatter.Println("Bem-vindo ao Companheiro!")
	ctx.Formatter.Print("Como você se chama? ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", nil
	}

	name := validate.SanitizeName(strings.TrimSpace(line))
	if name == "" {
		return "", nil
	}
	if err := validate.UserName(name); err != nil {
		return "", err
	}
	return name, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("companheiro %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Die prints an error and exits.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() {
		_ = ctx.Formatter.JSON(&output.ErrorResponse{
			Status:  "error",
			Error:   err.Error(),
			Message: apperrors.Suggestion(err),
		})
	} else {
		msg := "Error: " + err.Error()
		if s := apperrors.Suggestion(err); s != "" {
			msg += "\n" + s
		} else if apperrors.IsSystemError(err) {
			msg += "\nCheck the logs with 'companheiro daemon logs'."
		}
		os.Stderr.WriteString(msg + "\n")
	}
	os.Exit(1)
}
