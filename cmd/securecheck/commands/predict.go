package commands

import (
	"fmt"

	"securecheck-api/estimator"

	"github.com/spf13/cobra"
)

func (a *app) predictCmd() *cobra.Command {
	var req estimator.Request
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Estimate the violation and outcome of a stop",
		Example: `  securecheck predict --gender male --age 27 --duration "0-15 Min" \
    --country canada --date 2024-05-01 --time 14:30:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			snap, err := store.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			res, err := estimator.Estimate(req, snap.Records)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), estimator.Summary(req, res))
			if res.Fallback() {
				fmt.Fprintln(cmd.OutOrStdout(), "(no matching history, default prediction)")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "(based on %d matching stops)\n", res.Matched)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.DriverGender, "gender", "", "driver gender (male or female)")
	f.IntVar(&req.DriverAge, "age", 0, "driver age (16-100)")
	f.BoolVar(&req.SearchConducted, "search", false, "a search was conducted")
	f.StringVar(&req.StopDuration, "duration", "", "stop duration, as recorded in the ledger")
	f.BoolVar(&req.DrugsRelatedStop, "drugs", false, "the stop was drug related")
	f.StringVar(&req.CountryName, "country", "", "country name")
	f.StringVar(&req.DriverRace, "race", "", "driver race")
	f.StringVar(&req.SearchType, "search-type", "", "search type")
	f.StringVar(&req.VehicleNumber, "vehicle", "", "vehicle number")
	f.StringVar(&req.StopDate, "date", "", "stop date (YYYY-MM-DD)")
	f.StringVar(&req.StopTime, "time", "", "stop time (HH:MM:SS)")
	_ = cmd.MarkFlagRequired("gender")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}
