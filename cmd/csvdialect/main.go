// Command csvdialect inspects and converts CSV files between dialects.
//
// Usage:
//
//	csvdialect sniff data.csv
//	csvdialect view --preset mysql dump.tsv
//	csvdialect convert --preset excel --to rfc4180 report.csv > clean.csv
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabforge/dialect-csv/pkg/csv"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "csvdialect:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "csvdialect",
		Short:         "Inspect and convert CSV files between dialects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("preset", "", "input dialect preset (default, excel, mysql, ...)")
	pf.String("dialect-file", "", "YAML file with dialect settings")
	pf.String("delimiter", "", "field delimiter, may be multi-character")
	pf.String("quote", "", "quote character, or \"none\"")
	pf.String("escape", "", "escape character, or \"none\"")
	pf.String("comment", "", "comment marker, or \"none\"")
	pf.String("quote-mode", "", "output quoting: minimal, all, all-non-null, non-numeric, none")
	pf.String("null", "", "text that represents a null field")
	pf.Bool("header", false, "treat the first record as the header")
	pf.Bool("trim", false, "trim surrounding whitespace from fields")

	root.AddCommand(newConvertCmd(), newViewCmd(), newSniffCmd())
	return root
}

func inputDialect(cmd *cobra.Command) (csv.Dialect, error) {
	dialectFile, _ := cmd.Flags().GetString("dialect-file")
	return loadDialect(cmd.Flags(), dialectFile)
}

// openInput returns the file named by args, or stdin when none is given.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args[0])
}

func newConvertCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Re-emit a CSV file in another dialect",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := inputDialect(cmd)
			if err != nil {
				return err
			}
			out, ok := csv.Preset(to)
			if !ok {
				return fmt.Errorf("unknown preset %q", to)
			}
			src, err := openInput(args)
			if err != nil {
				return err
			}
			defer src.Close()
			return convert(src, os.Stdout, in, out)
		},
	}
	cmd.Flags().StringVar(&to, "to", "rfc4180", "output dialect preset")
	return cmd
}

func convert(src io.Reader, dst io.Writer, in, out csv.Dialect) error {
	parser, err := csv.NewParser(src, in)
	if err != nil {
		return err
	}
	printer, err := csv.NewPrinter(dst, out)
	if err != nil {
		return err
	}
	for {
		rec, err := parser.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		for i := 0; i < rec.Len(); i++ {
			if rec.IsNull(i) {
				if err := printer.Print(nil); err != nil {
					return err
				}
				continue
			}
			v, _ := rec.Get(i)
			if err := printer.Print(v); err != nil {
				return err
			}
		}
		if err := printer.Println(); err != nil {
			return err
		}
	}
	return printer.Flush()
}

func newSniffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sniff [file]",
		Short: "Guess the dialect of a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := openInput(args)
			if err != nil {
				return err
			}
			defer src.Close()

			sample := make([]byte, 64*1024)
			n, err := io.ReadFull(src, sample)
			if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
				return err
			}
			sniffer := csv.NewSniffer(string(sample[:n]))
			fmt.Fprintf(cmd.OutOrStdout(), "delimiter: %q\n", sniffer.DetectDelimiter())
			fmt.Fprintf(cmd.OutOrStdout(), "quoted:    %v\n", sniffer.Quoted())
			fmt.Fprintf(cmd.OutOrStdout(), "header:    %v\n", sniffer.HasHeader())
			return nil
		},
	}
}
