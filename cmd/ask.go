package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studysquad/studysquad/internal/markdown"
	"github.com/studysquad/studysquad/internal/session"
)

const askWidth = 80

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Tanya sekali, jawaban dicetak sebagai markdown",
	Long: `Jalankan satu giliran percakapan tanpa TUI.

Dengan --quiz, bot langsung ngasih soal latihan; pertanyaan jadi opsional.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringP("mood", "m", session.DefaultMood.String(), "Mood: semangat, capek, santai")
	askCmd.Flags().BoolP("quiz", "q", false, "Minta soal latihan")
	askCmd.Flags().String("style", "dark", "Glamour style: dark, light, ascii, notty")
}

func runAsk(cmd *cobra.Command, args []string) error {
	moodVal, _ := cmd.Flags().GetString("mood")
	quiz, _ := cmd.Flags().GetBool("quiz")
	style, _ := cmd.Flags().GetString("style")

	mood, err := session.ParseMood(moodVal)
	if err != nil {
		return err
	}
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" && !quiz {
		return errors.New("a question is required unless --quiz is set")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eventRepo, closeRepo := openEventRepo()
	defer closeRepo()

	orch, err := newOrchestrator(ctx, eventRepo)
	if err != nil {
		return fmt.Errorf("set up LLM provider: %w", err)
	}

	var reply *session.Reply
	switch {
	case quiz && question == "":
		session.NewModeController(orch.State()).EnterQuizMode()
		reply, err = orch.Respond(ctx, mood)
	case quiz:
		session.NewModeController(orch.State()).EnterQuizMode()
		reply, err = orch.HandleUserInput(ctx, question, mood)
	default:
		reply, err = orch.HandleUserInput(ctx, question, mood)
	}
	if err != nil {
		return errors.New(session.FailureMessage(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, markdown.New(style).Render(reply.Text, askWidth))
	fmt.Fprintf(out, "\nTotal Skor: %d\n", reply.Score)
	return nil
}
