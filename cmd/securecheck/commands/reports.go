package commands

import (
	"fmt"
	"io"

	"securecheck-api/handlers"
	"securecheck-api/models"
	"securecheck-api/web"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func (a *app) reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List and run the curated reports",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the report menu in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog(a.cfg.Database.Driver)
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"#", "Report"})
			for i, name := range cat.Names() {
				t.AppendRow(table.Row{i + 1, name})
			}
			t.Render()
			return nil
		},
	}

	var limit int
	run := &cobra.Command{
		Use:   "run NAME",
		Short: "Run one report against the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := a.catalog(store.Dialect())
			if err != nil {
				return err
			}
			tbl, err := cat.Execute(cmd.Context(), args[0], store)
			if err != nil {
				return err
			}
			if tbl.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), handlers.NoResultsMessage)
				return nil
			}
			renderReport(cmd.OutOrStdout(), tbl.Page(0, limit))
			if limit >= 0 && tbl.Len() > limit {
				fmt.Fprintf(cmd.OutOrStdout(), "%s of %s rows shown\n", web.Comma(limit), web.Comma(tbl.Len()))
			}
			return nil
		},
	}
	run.Flags().IntVar(&limit, "limit", -1, "maximum rows to print (-1 for all)")

	cmd.AddCommand(list, run)
	return cmd
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderReport(w io.Writer, tbl *models.Table) {
	t := newTable(w)
	header := make(table.Row, len(tbl.Columns))
	for i, c := range tbl.Columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range tbl.Rows {
		r := make(table.Row, len(tbl.Columns))
		for i, c := range tbl.Columns {
			r[i] = web.Cell(row[c])
		}
		t.AppendRow(r)
	}
	t.Render()
}
