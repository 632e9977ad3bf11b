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

// medCmd represents the medication commands.
var medCmd = &cobra.Command{
	Use:     "med [command]",
	Aliases: []string{"remedio", "meds"},
	Short:   "Manage daily medications",
	Long: `Manage the daily medication list.

Each medication has a name and a time of day. The reminder daemon fires
an alert at that time every day until the dose is marked as taken.

Examples:
  companheiro med add Losartana 8h
  companheiro med add "Vitamina D" 12:30
  companheiro med list
  companheiro med done a1b2c3d4
  companheiro med delete a1b2c3d4`,
	RunE: runMedList,
}

var medAddCmd = &cobra.Command{
	Use:   "add NAME TIME",
	Short: "Add a medication",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMedAdd,
}

var medListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List medications",
	RunE:    runMedList,
}

var medDoneCmd = &cobra.Command{
	Use:     "done ID",
	Aliases: []string{"toggle", "take"},
	Short:   "Mark a medication as taken (or undo)",
	Args:    cobra.ExactArgs(1),
	RunE:    runMedDone,
}

var medDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a medication",
	Args:    cobra.ExactArgs(1),
	RunE:    runMedDelete,
}

func init() {
	medCmd.AddCommand(medAddCmd)
	medCmd.AddCommand(medListCmd)
	medCmd.AddCommand(medDoneCmd)
	medCmd.AddCommand(medDeleteCmd)

	rootCmd.AddCommand(medCmd)
}

func runMedAdd(cmd *cobra.Command, args []string) error {
	// Last argument is the time, everything before it is the name.
	name := validate.CollapseSpaces(strings.Join(args[:len(args)-1], " "))
	timeOfDay, err := parser.ParseClock(args[len(args)-1], time.Now())
	if err != nil {
		return err
	}

	if err := validate.MedicationName(name); err != nil {
		return err
	}
	if err := validate.TimeOfDay(timeOfDay); err != nil {
		return err
	}

	med := ctx.Session.AddMedication(cmd.Context(), name, timeOfDay)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":     "added",
			"medication": output.NewMedicationOutput(med),
		})
	}

	ctx.CLIFormatter().Success("Remédio adicionado: " + med.Name + " às " + med.Time)
	return nil
}

func runMedList(cmd *cobra.Command, args []string) error {
	meds := ctx.Session.Medications()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewMedicationsResponse(meds))
	}

	ctx.CLIFormatter().PrintMedications(meds)
	return nil
}

func runMedDone(cmd *cobra.Command, args []string) error {
	id := args[0]
	med := findMedication(id)
	if med == nil {
		return medNotFound(id)
	}

	taken, ok := ctx.Session.ToggleMedication(cmd.Context(), med.ID)
	if !ok {
		return medNotFound(id)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "toggled",
			"id":     med.ID,
			"taken":  taken,
		})
	}

	if taken {
		ctx.CLIFormatter().Success("Remédio tomado: " + med.Name)
	} else {
		ctx.CLIFormatter().Warning("Remédio desmarcado: " + med.Name)
	}
	return nil
}

func runMedDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	med := findMedication(id)
	if med == nil {
		return medNotFound(id)
	}

	ctx.Session.DeleteMedication(cmd.Context(), med.ID)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "deleted",
			"id":     med.ID,
		})
	}

	ctx.CLIFormatter().Success("Remédio removido: " + med.Name)
	return nil
}

func medNotFound(id string) error {
	return apperrors.NewUserErrorWithField("id", id, "medication not found",
		"Use 'companheiro med list' to see the registered medications").
		WithCause(apperrors.ErrMedicationNotFound)
}

// findMedication resolves an ID or unambiguous ID prefix to a medication.
func findMedication(id string) *model.Medication {
	var match *model.Medication
	for _, m := range ctx.Session.Medications() {
		if m.ID == id {
			return m
		}
		if strings.HasPrefix(m.ID, id) {
			if match != nil {
				return nil
			}
			match = m
		}
	}
	return match
}
