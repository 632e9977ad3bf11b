package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/tui"
)

// dashboardCmd represents the interactive dashboard.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"painel", "ui"},
	Short:   "Open the interactive dashboard",
	Long: `Open the full-screen dashboard with the medication and appointment
lists. Medications can be marked as taken with the space bar.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return apperrors.NewUserError("the dashboard needs a terminal",
			"Run companheiro from an interactive terminal")
	}

	return tui.Run(tui.DashboardConfig{
		Session: ctx.Session,
	})
}
