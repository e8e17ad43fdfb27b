package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"screenruler/conversion"
	"screenruler/factor"
	"screenruler/internal/metrics"
	"screenruler/internal/ruler"
	"screenruler/unit"
)

func parseUnits(args ...string) ([]unit.Unit, error) {
	res := make([]unit.Unit, len(args))
	for i, a := range args {
		u, err := unit.Parse(a)
		if err != nil {
			return nil, err
		}

		res[i] = u
	}

	return res, nil
}

func newConvertCommand(root *rootOptions) *cobra.Command {
	var asFloat bool

	cmd := &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between two units",
		Example: `  screenruler convert 96 px in
  screenruler convert 1/3 in mm --float`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := factor.ParseRat(args[0])
			if err != nil {
				return err
			}

			units, err := parseUnits(args[1], args[2])
			if err != nil {
				return err
			}

			tbl, err := root.table()
			if err != nil {
				return err
			}

			res, err := tbl.Convert(v, units[0], units[1])
			if err != nil {
				return err
			}

			out := res.RatString()
			if asFloat {
				out = res.FloatString(root.cfg.Digits)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", args[0], units[0], out, units[1])

			return err
		},
	}
	cmd.Flags().BoolVar(&asFloat, "float", false, "Print the result as a decimal instead of an exact fraction")

	return cmd
}

func newUnitsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the known units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := root.table()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, u := range tbl.Units() {
				label, err := tbl.Label(u)
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "%s\t%s\n", u, label)
			}

			return w.Flush()
		},
	}
}

func newTableCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the factor of every unit pair (row unit to column unit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := root.table()
			if err != nil {
				return err
			}

			units := tbl.Units()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)

			fmt.Fprint(w, "\t")

			for _, u := range units {
				fmt.Fprintf(w, "%s\t", u)
			}

			fmt.Fprintln(w)

			for _, a := range units {
				fmt.Fprintf(w, "%s\t", a)

				for _, b := range units {
					f, err := tbl.Factor(a, b)
					if err != nil {
						return err
					}

					fmt.Fprintf(w, "%s\t", f.RatString())
				}

				fmt.Fprintln(w)
			}

			return w.Flush()
		},
	}
}

func newPathCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path FROM TO",
		Short: "Explain how the factor between two units was obtained",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := parseUnits(args...)
			if err != nil {
				return err
			}

			tbl, err := root.table()
			if err != nil {
				return err
			}

			p, err := tbl.Path(units[0], units[1])
			if err != nil {
				return err
			}

			f, err := tbl.Factor(units[0], units[1])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: x%s (%s)\n", units[0], units[1], f.RatString(), p)

			return err
		},
	}
}

func newTicksCommand(root *rootOptions) *cobra.Command {
	var labelsOnly bool

	cmd := &cobra.Command{
		Use:   "ticks UNIT SPAN_PX",
		Short: "Lay out ruler ticks for a span of pixels",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := parseUnits(args[0])
			if err != nil {
				return err
			}

			span, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid span %q: %w", args[1], err)
			}

			ft, err := root.factorTable()
			if err != nil {
				return err
			}

			steps := ruler.DefaultSteps(units[0])
			if d, ok := ft.Lookup(units[0]); ok && len(d.Ticks) > 0 {
				steps = d.Ticks
			}

			tbl, err := root.table()
			if err != nil {
				return err
			}

			ticks, err := ruler.Ticks(tbl, units[0], span, steps)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PX\tLEVEL\tVALUE\tLABEL")

			for _, tk := range ticks {
				if labelsOnly && tk.Label == "" {
					continue
				}

				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", tk.Px, tk.Level, ruler.FormatValue(tk.Value), tk.Label)
			}

			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&labelsOnly, "labels-only", false, "Only print labelled (major) ticks")

	return cmd
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the factor table and build the conversion table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := root.factorTable()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			diags := factor.Validate(ft)
			for _, d := range diags.All() {
				fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
			}

			tbl, err := root.table()
			if err != nil {
				var cerr *conversion.ConfigurationError
				if errors.As(err, &cerr) && cerr.From != "" {
					fmt.Fprintf(out, "error: no conversion from %s to %s\n", cerr.From, cerr.To)
				}

				return err
			}

			_, err = fmt.Fprintf(out, "ok: %d units, %d pairs\n", tbl.Len(), tbl.Len()*tbl.Len())

			return err
		},
	}
}

func newExportCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the factor table as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := root.factorTable()
			if err != nil {
				return err
			}

			data, err := factor.Marshal(ft)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}

func newMetricsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Build the conversion table and print its metrics in Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := root.table(); err != nil {
				return err
			}

			return metrics.WriteText(cmd.OutOrStdout(), root.registry)
		},
	}
}
