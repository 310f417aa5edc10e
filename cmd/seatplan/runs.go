package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"svw.info/seatplan/internal/domain"
)

func newRunsCmd(a *app) *cobra.Command {
	runs := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored runs",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, st, err := a.service()
			if err != nil {
				return err
			}
			defer st.Close()
			metas, err := uc.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTRATEGY\tSEATED\tCREATED")
			for _, m := range metas {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", m.ID, m.Name, m.Strategy, m.Seated,
					time.Unix(m.CreatedAt, 0).UTC().Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored seat map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, st, err := a.service()
			if err != nil {
				return err
			}
			defer st.Close()
			r, err := uc.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			g, err := domain.GridFromCells(r.Cells, r.Pitch)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, g.String())
			fmt.Fprintf(out, "id=%s name=%q strategy=%s order=%s seed=%d seated=%d groups=%v\n",
				r.ID, r.Name, r.Strategy, r.Order, r.Seed, r.Seated, r.Groups)
			if r.Error != "" {
				fmt.Fprintf(out, "stopped: %s\n", r.Error)
			}
			return nil
		},
	}
	runs.AddCommand(list, show)
	return runs
}
