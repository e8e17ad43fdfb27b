package main

import (
	"flag"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"screenruler/conversion"
	"screenruler/factor"
	"screenruler/internal/config"
	"screenruler/internal/metrics"
)

type rootOptions struct {
	cmd      *cobra.Command
	viper    *viper.Viper
	cfg      config.Config
	registry *prometheus.Registry
	recorder *metrics.Recorder
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{
		viper:    viper.New(),
		registry: prometheus.NewRegistry(),
	}

	cmd := &cobra.Command{
		Use:           "screenruler",
		Short:         "Exact conversions between screen and print length units",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.viper, cmd.Flags())
			if err != nil {
				return err
			}

			opts.cfg = cfg

			return nil
		},
	}
	opts.cmd = cmd

	config.AddFlags(cmd.PersistentFlags())

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		newConvertCommand(opts),
		newUnitsCommand(opts),
		newTableCommand(opts),
		newPathCommand(opts),
		newTicksCommand(opts),
		newCheckCommand(opts),
		newExportCommand(opts),
		newMetricsCommand(opts),
	)

	return cmd
}

func (o *rootOptions) factorTable() (*factor.Table, error) {
	t, err := o.cfg.FactorTable()
	if err != nil {
		return nil, err
	}

	source := o.cfg.Factors
	if source == "" {
		source = "built-in"
	}

	klog.V(1).InfoS("Loaded factor table", "source", source, "units", t.Len(), "factors", len(t.Edges()))

	return t, nil
}

// table builds the conversion table, with metrics attached.
func (o *rootOptions) table() (*conversion.Table, error) {
	ft, err := o.factorTable()
	if err != nil {
		return nil, err
	}

	if o.recorder == nil {
		rec, err := metrics.NewRecorder(o.registry)
		if err != nil {
			return nil, err
		}

		o.recorder = rec
	}

	tbl, err := conversion.Build(ft, conversion.WithObserver(o.recorder))
	if err != nil {
		klog.ErrorS(err, "Cannot build conversion table")
		return nil, err
	}

	o.recorder.SetUnits(tbl.Len())

	return tbl, nil
}
