package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"svw.info/seatplan/internal/config"
	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/generator"
	"svw.info/seatplan/internal/usecase"
)

type solveFlags struct {
	venue     string
	groups    string
	weights   string
	total     int
	strategy  string
	order     string
	seed      int64
	threshold float64
	save      bool
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Seat a list of groups (or a random mix) in a venue",
		Example: `  seatplan solve --venue hall.yaml --groups 2:3,4:1
  seatplan solve --venue hall.yaml --weights 1:0.3,2:0.5,4:0.2 --total 40 --strategy priority`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(a, cmd)
			if err != nil {
				return err
			}
			uc, st, err := a.service()
			if err != nil {
				return err
			}
			defer st.Close()

			res, solveErr := uc.Solve(cmd.Context(), req)
			if res == nil {
				return solveErr
			}
			printResult(cmd.OutOrStdout(), res)
			if solveErr != nil {
				return solveErr
			}
			if f.save {
				if err := uc.Save(cmd.Context(), res.Run); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved as %s\n", res.Run.ID)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.venue, "venue", "", "venue layout file (YAML or JSON)")
	fl.StringVar(&f.groups, "groups", "", "groups as size:count pairs, e.g. 2:3,4:1")
	fl.StringVar(&f.weights, "weights", "", "relative group size weights, e.g. 1:0.3,2:0.7")
	fl.IntVar(&f.total, "total", 0, "people to seat when drawing groups from --weights")
	fl.StringVar(&f.strategy, "strategy", "", "exhaustive|priority|naive (default from config)")
	fl.StringVar(&f.order, "order", "", "desc|asc|random (default from config)")
	fl.Int64Var(&f.seed, "seed", 0, "random seed (default from config)")
	fl.Float64Var(&f.threshold, "threshold", 0, "report cross-group pairs closer than this")
	fl.BoolVar(&f.save, "save", false, "store the run")
	_ = cmd.MarkFlagRequired("venue")
	cmd.MarkFlagsMutuallyExclusive("groups", "weights")
	return cmd
}

func (f solveFlags) request(a *app, cmd *cobra.Command) (usecase.SolveRequest, error) {
	l, err := config.LoadLayout(f.venue)
	if err != nil {
		return usecase.SolveRequest{}, err
	}
	req := usecase.SolveRequest{
		Layout:    l,
		Strategy:  a.cfg.Solver.ParsedStrategy(),
		Order:     a.cfg.Solver.ParsedOrder(),
		Seed:      a.cfg.Solver.Seed,
		Threshold: f.threshold,
	}
	if f.strategy != "" {
		if req.Strategy, err = domain.ParseStrategy(f.strategy); err != nil {
			return req, err
		}
	}
	if f.order != "" {
		if req.Order, err = domain.ParsePopOrder(f.order); err != nil {
			return req, err
		}
	}
	if cmd.Flags().Changed("seed") {
		req.Seed = f.seed
	}
	switch {
	case f.groups != "":
		if req.Groups, err = parseGroups(f.groups); err != nil {
			return req, err
		}
	case f.weights != "":
		w, err := parseWeights(f.weights)
		if err != nil {
			return req, err
		}
		req.Supply = &generator.Distribution{Kind: "weighted", Weights: w}
		req.Total = f.total
	default:
		return req, errors.New("one of --groups or --weights is required")
	}
	return req, nil
}

func printResult(w io.Writer, res *usecase.SolveResult) {
	fmt.Fprint(w, res.Grid.String())
	fmt.Fprintf(w, "strategy=%s order=%s seed=%d\n", res.Run.Strategy, res.Run.Order, res.Run.Seed)
	fmt.Fprintf(w, "groups=%d seated=%d/%d probes=%d dur=%s\n",
		res.Stats.Groups, res.Stats.Seated, res.Grid.TotalSeats(), res.Stats.Probes, res.Stats.Duration)
	if res.Run.Score > 0 {
		fmt.Fprintf(w, "mean nearest distance=%.3f\n", res.Run.Score)
	}
	if res.Report != nil {
		fmt.Fprintf(w, "closer than %.2f: pairs=%d seats=%d mean=%.3f\n",
			res.Report.Threshold, res.Report.Pairs, res.Report.Flagged, res.Report.MeanCount)
	}
}
