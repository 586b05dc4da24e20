package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Tampilkan riwayat sesi yang tersimpan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openProgress()
		if err != nil {
			return err
		}
		log, err := s.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(log.Sessions) == 0 {
			fmt.Fprintln(out, "Belum ada progress tersimpan.")
			return nil
		}
		total := 0
		for _, r := range log.Sessions {
			fmt.Fprintln(out, r.String())
			total += r.Score
		}
		fmt.Fprintf(out, "\n%d sesi, total skor %d\n", len(log.Sessions), total)
		return nil
	},
}
