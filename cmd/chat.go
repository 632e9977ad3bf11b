package cmd

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ljmonteiro/companheiro/internal/chat"
	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/output"
	"github.com/ljmonteiro/companheiro/internal/validate"
	"github.com/ljmonteiro/companheiro/internal/voice"
)

// Chat command flags.
var (
	chatFlagVoice   bool
	chatFlagSuggest bool
)

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:     "chat [MESSAGE...]",
	Aliases: []string{"conversar"},
	Short:   "Talk with IAn, the virtual companion",
	Long: `Talk with IAn, the virtual grandson.

With a message argument, sends a single message and prints the answer.
Without arguments, opens an interactive conversation. When voice output
is enabled in the profile, answers are also read aloud.

Examples:
  companheiro chat "Bom dia! Como está o tempo?"
  companheiro chat
  companheiro chat --voice
  companheiro chat --suggest`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatFlagVoice, "voice", false,
		"Dictate the message with the microphone")
	chatCmd.Flags().BoolVar(&chatFlagSuggest, "suggest", false,
		"Show activity suggestions to start a conversation")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatFlagSuggest {
		ctx.CLIFormatter().PrintActivities()
		return nil
	}

	conv := ctx.NewConversation()
	readBack := ctx.Session.Profile().VoiceEnabled

	if chatFlagVoice {
		text, err := dictate(cmd)
		if err != nil {
			return err
		}
		return sendOnce(cmd, conv, text, readBack)
	}

	if len(args) > 0 {
		return sendOnce(cmd, conv, strings.Join(args, " "), readBack)
	}

	return chatLoop(cmd, conv, readBack)
}

// sendOnce sends a single message and prints the answer. The answer is
// spoken here rather than through the conversation readback so the process
// does not exit mid-sentence.
func sendOnce(cmd *cobra.Command, conv *chat.Conversation, text string, readBack bool) error {
	if err := validate.ChatMessage(text); err != nil {
		return err
	}

	reply, err := conv.Send(cmd.Context(), text, false)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(&output.ChatResponse{Status: "ok", Reply: reply})
	}

	ctx.CLIFormatter().PrintAssistant(reply)

	if readBack && ctx.Speaker.Available() {
		time.Sleep(ctx.Config.Chat.ReadbackDelay)
		_ = ctx.Speaker.Speak(reply)
	}
	return nil
}

// chatLoop runs the interactive conversation until the user quits.
func chatLoop(cmd *cobra.Command, conv *chat.Conversation, readBack bool) error {
	cli := ctx.CLIFormatter()
	cli.Title("Conversando com o IAn")
	cli.Muted("Digite sua mensagem, ou 'sair' para encerrar.")
	ctx.Formatter.Println("")

	reader := bufio.NewReader(os.Stdin)
	for {
		ctx.Formatter.Print("Você: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			ctx.Formatter.Println("")
			return nil
		}

		text := strings.TrimSpace(line)
		switch strings.ToLower(text) {
		case "":
			continue
		case "sair", "exit", "quit":
			cli.Muted("Até logo!")
			return nil
		}

		if err := validate.ChatMessage(text); err != nil {
			cli.Error(err.Error())
			continue
		}

		reply, err := conv.Send(cmd.Context(), text, readBack)
		if err != nil {
			cli.Error(err.Error())
			continue
		}
		cli.PrintAssistant(reply)
		ctx.Formatter.Println("")
	}
}

// dictate captures one spoken message from the microphone.
func dictate(cmd *cobra.Command) (string, error) {
	if !ctx.Recognizer.Available() {
		return "", apperrors.NewUserError("voice input is not available",
			"Install a recognizer and set COMPANHEIRO_LISTEN_COMMAND")
	}

	ctx.CLIFormatter().Muted("Ouvindo... fale sua mensagem.")
	text, err := ctx.Recognizer.Listen(cmd.Context())
	if err != nil {
		return "", apperrors.NewUserError(voice.GuidanceFor(err), "")
	}

	ctx.Formatter.Println("Você disse: " + text)
	return text, nil
}
