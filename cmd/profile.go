package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/output"
	"github.com/ljmonteiro/companheiro/internal/validate"
)

// profileCmd represents the profile commands.
var profileCmd = &cobra.Command{
	Use:     "profile [command]",
	Aliases: []string{"perfil"},
	Short:   "Manage the user profile",
	Long: `Manage the user profile: the name used in greetings and in the
companion's persona, the dashboard color scheme and voice output.

Examples:
  companheiro profile
  companheiro profile name Maria
  companheiro profile darkmode on
  companheiro profile voice off`,
	RunE: runProfileShow,
}

var profileNameCmd = &cobra.Command{
	Use:   "name NAME",
	Short: "Set the user's name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfileName,
}

var profileDarkModeCmd = &cobra.Command{
	Use:   "darkmode on|off",
	Short: "Toggle the dark color scheme",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDarkMode,
}

var profileVoiceCmd = &cobra.Command{
	Use:   "voice on|off",
	Short: "Toggle spoken answers and alerts",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileVoice,
}

func init() {
	profileCmd.AddCommand(profileNameCmd)
	profileCmd.AddCommand(profileDarkModeCmd)
	profileCmd.AddCommand(profileVoiceCmd)

	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	profile := ctx.Session.Profile()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewProfileResponse(profile))
	}

	ctx.CLIFormatter().PrintProfile(profile)
	return nil
}

func runProfileName(cmd *cobra.Command, args []string) error {
	name := validate.SanitizeName(strings.Join(args, " "))
	if err := validate.UserName(name); err != nil {
		return err
	}

	ctx.Session.SetName(cmd.Context(), name)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "updated",
			"name":   name,
		})
	}

	ctx.CLIFormatter().Success("Prazer em te conhecer, " + name + "!")
	return nil
}

func runProfileDarkMode(cmd *cobra.Command, args []string) error {
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	ctx.Session.SetDarkMode(cmd.Context(), on)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":    "updated",
			"dark_mode": on,
		})
	}

	if on {
		ctx.CLIFormatter().Success("Modo escuro ativado")
	} else {
		ctx.CLIFormatter().Success("Modo escuro desativado")
	}
	return nil
}

func runProfileVoice(cmd *cobra.Command, args []string) error {
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	ctx.Session.SetVoiceEnabled(cmd.Context(), on)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "updated",
			"voice":  on,
		})
	}

	cli := ctx.CLIFormatter()
	if on {
		cli.Success("Voz ativada")
		if !ctx.Speaker.Available() {
			cli.Warning("Nenhum sintetizador de voz encontrado. Instale o espeak-ng.")
		}
	} else {
		cli.Success("Voz desativada")
	}
	return nil
}

// parseOnOff parses an on/off style argument.
func parseOnOff(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "1", "sim":
		return true, nil
	case "off", "false", "0", "não", "nao":
		return false, nil
	}
	return false, apperrors.NewUserErrorWithField("value", value,
		"expected on or off", "Use 'on' to enable or 'off' to disable")
}
