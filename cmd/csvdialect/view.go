package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tabforge/dialect-csv/pkg/csv"
)

func newViewCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Render a CSV file as an aligned table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := inputDialect(cmd)
			if err != nil {
				return err
			}
			src, err := openInput(args)
			if err != nil {
				return err
			}
			defer src.Close()
			return view(src, cmd.OutOrStdout(), d, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many records (0 = all)")
	return cmd
}

func view(src io.Reader, dst io.Writer, d csv.Dialect, limit int) error {
	parser, err := csv.NewParser(src, d)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(dst)
	t.SetStyle(table.StyleLight)
	if h := parser.Headers(); h != nil {
		t.AppendHeader(toRow(h.Names()))
	}

	n := 0
	for {
		rec, err := parser.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		t.AppendRow(viewRow(rec))
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	t.Render()
	return nil
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func viewRow(rec *csv.Record) table.Row {
	row := make(table.Row, rec.Len())
	for i := 0; i < rec.Len(); i++ {
		if rec.IsNull(i) {
			row[i] = "NULL"
			continue
		}
		v, _ := rec.Get(i)
		row[i] = v
	}
	return row
}
