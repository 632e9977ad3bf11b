package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/output"
	"github.com/ljmonteiro/companheiro/internal/parser"
	"github.com/ljmonteiro/companheiro/internal/validate"
)

// Appointment command flags.
var (
	apptAddFlagDate     string
	apptAddFlagTime     string
	apptAddFlagLocation string
)

// apptCmd represents the appointment commands.
var apptCmd = &cobra.Command{
	Use:     "appt [command]",
	Aliases: []string{"consulta", "appointment"},
	Short:   "Manage appointments",
	Long: `Manage upcoming appointments.

The moment can be given in natural language after the title, or with
explicit --date and --time flags. The reminder daemon alerts one hour
and ten minutes before each appointment.

Examples:
  companheiro appt add "Consulta cardiologista" amanhã 14:00
  companheiro appt add Dentista --date 2026-09-15 --time 09:30 --location "Clínica Sorriso"
  companheiro appt list
  companheiro appt delete a1b2c3d4`,
	RunE: runApptList,
}

var apptAddCmd = &cobra.Command{
	Use:   "add TITLE [WHEN...]",
	Short: "Add an appointment",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runApptAdd,
}

var apptListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List appointments",
	RunE:    runApptList,
}

var apptDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete an appointment",
	Args:    cobra.ExactArgs(1),
	RunE:    runApptDelete,
}

func init() {
	apptAddCmd.Flags().StringVar(&apptAddFlagDate, "date", "",
		"Appointment date (YYYY-MM-DD)")
	apptAddCmd.Flags().StringVar(&apptAddFlagTime, "time", "",
		"Appointment time (HH:MM)")
	apptAddCmd.Flags().StringVarP(&apptAddFlagLocation, "location", "l", "",
		"Appointment location")

	apptCmd.AddCommand(apptAddCmd)
	apptCmd.AddCommand(apptListCmd)
	apptCmd.AddCommand(apptDeleteCmd)

	rootCmd.AddCommand(apptCmd)
}

func runApptAdd(cmd *cobra.Command, args []string) error {
	title := validate.CollapseSpaces(args[0])
	if err := validate.AppointmentTitle(title); err != nil {
		return err
	}

	date, timeOfDay := apptAddFlagDate, apptAddFlagTime
	if date == "" || timeOfDay == "" {
		if len(args) < 2 {
			return apperrors.NewUserError("missing appointment moment",
				"Give the moment after the title (e.g. 'amanhã 14:00') or use --date and --time")
		}
		when := parser.ParseWhenArgs(args[1:], time.Now())
		if when.Error != nil {
			return when.Error
		}
		date, timeOfDay = when.Date, when.Time
	}

	if err := validate.Date(date); err != nil {
		return err
	}
	if err := validate.TimeOfDay(timeOfDay); err != nil {
		return err
	}

	location := validate.CollapseSpaces(apptAddFlagLocation)
	if err := validate.Location(location); err != nil {
		return err
	}

	appt := ctx.Session.AddAppointment(cmd.Context(), title, date, timeOfDay, location)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":      "added",
			"appointment": output.NewAppointmentOutput(appt, time.Now()),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success("Consulta marcada: " + appt.Title)
	cli.Muted("  " + parser.FormatWhen(appt.At(), time.Now()))
	return nil
}

func runApptList(cmd *cobra.Command, args []string) error {
	appts := ctx.Session.Appointments()
	now := time.Now()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewAppointmentsResponse(appts, now))
	}

	ctx.CLIFormatter().PrintAppointments(appts, now)
	return nil
}

func runApptDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	appt := findAppointment(id)
	if appt == nil {
		return apperrors.NewUserErrorWithField("id", id, "appointment not found",
			"Use 'companheiro appt list' to see the registered appointments").
			WithCause(apperrors.ErrAppointmentNotFound)
	}

	ctx.Session.DeleteAppointment(cmd.Context(), appt.ID)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "deleted",
			"id":     appt.ID,
		})
	}

	ctx.CLIFormatter().Success("Consulta removida: " + appt.Title)
	return nil
}

// findAppointment resolves an ID or unambiguous ID prefix to an appointment.
func findAppointment(id string) *model.Appointment {
	var match *model.Appointment
	for _, a := range ctx.Session.Appointments() {
		if a.ID == id {
			return a
		}
		if strings.HasPrefix(a.ID, id) {
			if match != nil {
				return nil
			}
			match = a
		}
	}
	return match
}
