package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List assessable domains and their question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := newLogger(cmd, false)
		if err != nil {
			return err
		}
		defer closeLog()

		bank, err := loadBank(cmd, logger.With(slog.String("command", "domains")))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %s\n", "Domain", "Questions")
		for _, d := range bank.Domains() {
			fmt.Fprintf(out, "%-16s  %d\n", d, bank.Count(d))
		}
		return nil
	},
}
