package cmd

import (
	"bufio"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// SOS command flags.
var sosFlagYes bool

// sosCmd represents the emergency command.
var sosCmd = &cobra.Command{
	Use:     "sos",
	Aliases: []string{"emergencia"},
	Short:   "Call the emergency number",
	Long: `Hand off to the system dialer with the configured emergency number.

The number defaults to 190 and can be changed with COMPANHEIRO_EMERGENCY_NUMBER.
A confirmation is asked first unless --yes is given.`,
	RunE: runSOS,
}

func init() {
	sosCmd.Flags().BoolVarP(&sosFlagYes, "yes", "y", false,
		"Skip the confirmation prompt")

	rootCmd.AddCommand(sosCmd)
}

func runSOS(cmd *cobra.Command, args []string) error {
	number := ctx.Config.EmergencyNumber
	cli := ctx.CLIFormatter()

	if !sosFlagYes {
		ctx.Formatter.Printf("Ligar para o número de emergência %s? (s/n) ", number)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "s" && answer != "sim" && answer != "y" {
			cli.Muted("Ligação cancelada.")
			return nil
		}
	}

	if err := openDialer(number); err != nil {
		cli.Error("Não foi possível abrir o discador.")
		cli.Warning("Ligue você mesmo para " + number + ".")
		return nil
	}

	cli.Success("Abrindo o discador com o número " + number + "...")
	return nil
}

// openDialer opens the platform handler for a tel: URL.
func openDialer(number string) error {
	url := "tel:" + number
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Run()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Run()
	default:
		return exec.Command("xdg-open", url).Run()
	}
}
