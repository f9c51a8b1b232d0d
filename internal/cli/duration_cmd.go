package cli

import (
	"fmt"
	"strconv"

	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/spf13/cobra"
)

func newDurationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <days>",
		Short: "Render a day count as years, months and days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil || days < 0 {
				return fmt.Errorf("invalid days %q: must be a non-negative integer", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), employment.FormatDuration(days))
			return nil
		},
	}
}
