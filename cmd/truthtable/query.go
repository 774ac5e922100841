package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dmath-truthtable/internal/render"
	"dmath-truthtable/internal/view"
)

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <formula>",
		Short: "Fetch and print the truth table of one formula",
		Example: `  truthtable query '(p->q)&(!p->q)'
  truthtable query 'a|b' --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.cfg.Format
			if !render.ValidFormat(format) {
				return fmt.Errorf("unknown format %q", format)
			}

			p := view.New(a.client)
			p.SetFormula(args[0])
			if err := p.Submit(cmd.Context()); err != nil {
				return errors.New(view.Message(err))
			}

			return render.Write(cmd.OutOrStdout(), p.Snapshot().Model, format)
		},
	}

	cmd.Flags().StringP("format", "f", "", "output format: table, json, csv, markdown (default table)")

	return cmd
}
