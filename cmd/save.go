package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <topic>",
	Short: "Simpan sesi ke progress tanpa buka TUI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetInt("score")

		s, err := openProgress()
		if err != nil {
			return err
		}
		rec, err := s.Append(strings.Join(args, " "), score)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Progress berhasil disimpan ✅")
		fmt.Fprintln(cmd.OutOrStdout(), rec.String())
		return nil
	},
}

func init() {
	saveCmd.Flags().IntP("score", "s", 0, "Skor sesi")
}
