package cli

import (
	"fmt"

	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var start, rawStatus, effective, asOf string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compute days worked and permanent eligibility for a record",
		Example: `  dwrctl status --start 2024-01-01
  dwrctl status --start 2024-01-01 --status terminated --effective 2024-02-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := employment.ParseStatus(rawStatus)
			if err != nil {
				return fmt.Errorf("--status: %w", err)
			}

			reference := app.Clock.Now()
			parsed, err := employment.ParseDate(asOf)
			if err != nil {
				return fmt.Errorf("--as-of: %w", err)
			}
			// 空白のみの --as-of は未指定として扱う
			if parsed != nil {
				reference = *parsed
			}

			calc, err := employment.Compute(employment.Input{
				StartDate:     start,
				Status:        status,
				EffectiveDate: effective,
				ReferenceDate: reference,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatCalculation(status, calc))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rawStatus, "status", "", "Employment status: probationary, permanent, resigned, terminated")
	cmd.Flags().StringVar(&effective, "effective", "", "Resignation or termination effective date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Reference date (YYYY-MM-DD, default today)")

	return cmd
}
