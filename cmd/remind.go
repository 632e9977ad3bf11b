package cmd

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/timer"
	"github.com/ljmonteiro/companheiro/internal/validate"
)

// remindCmd represents the one-off countdown reminder.
var remindCmd = &cobra.Command{
	Use:     "remind DURATION [MESSAGE...]",
	Aliases: []string{"lembrete", "timer"},
	Short:   "Run a one-off countdown reminder",
	Long: `Run a countdown and send a notification when the time runs out.

The duration accepts Go syntax (20m, 1h30m) or a plain number of minutes.

Examples:
  companheiro remind 20m "Desligar o fogão"
  companheiro remind 90 "Hora da caminhada"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return apperrors.NewUserError("the countdown needs a terminal",
			"Run companheiro from an interactive terminal")
	}

	duration, err := parseRemindDuration(args[0])
	if err != nil {
		return err
	}

	label := "Lembrete"
	if len(args) > 1 {
		label = validate.CollapseSpaces(strings.Join(args[1:], " "))
	}

	countdown := timer.NewCountdown(label, duration)
	voiceEnabled := ctx.Session.Profile().VoiceEnabled

	countdown.SetCallback(func(event timer.Event, state timer.State) {
		if event != timer.EventDone {
			return
		}
		ctx.Dispatcher.Deliver(model.NewCountdownAlert(state.Label), voiceEnabled)
	})

	return countdown.Run(cmd.Context())
}

// parseRemindDuration parses a countdown duration. Accepts Go duration
// syntax or a bare number of minutes.
func parseRemindDuration(value string) (time.Duration, error) {
	if minutes, err := strconv.Atoi(value); err == nil {
		if minutes <= 0 {
			return 0, apperrors.NewUserErrorWithField("duration", value,
				"duration must be positive", "Try something like 20m or 1h30m")
		}
		return time.Duration(minutes) * time.Minute, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, apperrors.NewUserErrorWithField("duration", value,
			"invalid duration", "Try something like 20m or 1h30m")
	}
	return d, nil
}
