package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"svw.info/seatplan/internal/config"
	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/usecase"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		venue     string
		weights   string
		threshold float64
		tolerance float64
		bootstrap int
		seed      int64
	)
	cmd := &cobra.Command{
		Use:     "suggest",
		Short:   "Estimate how many tickets a venue can sell",
		Example: `  seatplan suggest --venue hall.yaml --weights 1:0.2,2:0.5,3:0.1,4:0.2 --threshold 1.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := config.LoadLayout(venue)
			if err != nil {
				return err
			}
			w, err := parseWeights(weights)
			if err != nil {
				return err
			}
			o := usecase.SuggestOverrides{Threshold: threshold, Bootstrap: bootstrap}
			if cmd.Flags().Changed("tolerance") {
				o.Tolerance = &tolerance
			}
			if cmd.Flags().Changed("seed") {
				o.Seed = &seed
			}
			uc, st, err := a.service()
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := uc.SuggestTickets(cmd.Context(), l, w, o)
			if err != nil {
				return err
			}
			g, err := domain.NewGrid(l)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: sell up to %d tickets (%d seats)\n", l.Name, n, g.TotalSeats())
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&venue, "venue", "", "venue layout file (YAML or JSON)")
	fl.StringVar(&weights, "weights", "", "relative group size weights, e.g. 1:0.3,2:0.7")
	fl.Float64Var(&threshold, "threshold", 0, "minimum cross-group distance (default from config)")
	fl.Float64Var(&tolerance, "tolerance", 0, "accepted fraction of failing trials (default from config)")
	fl.IntVar(&bootstrap, "bootstrap", 0, "trials per candidate count (default from config)")
	fl.Int64Var(&seed, "seed", 0, "random seed (default from config)")
	_ = cmd.MarkFlagRequired("venue")
	_ = cmd.MarkFlagRequired("weights")
	return cmd
}
