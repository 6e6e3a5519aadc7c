package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ieee0824/signhmm/corpus"
	"github.com/ieee0824/signhmm/feature"
	"github.com/ieee0824/signhmm/internal/config"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	selector   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "signhmm",
		Short: "Select per-word HMM state counts and recognize isolated words",
		Long: `signhmm fits one Gaussian HMM per vocabulary word, choosing the number of
hidden states with a constant, BIC, DIC or cross-validation strategy, and
classifies test sequences by the highest-scoring word model.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&a.selector, "selector", "s", "", "selection strategy (constant, bic, dic, cv)")

	cmd.AddCommand(newSelectCommand(a))
	cmd.AddCommand(newRecognizeCommand(a))
	cmd.AddCommand(newRunCommand(a))
	cmd.AddCommand(newGenCorpusCommand(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Loader{}.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.selector != "" {
		cfg.Selector = a.selector
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	return nil
}

// prepOptions selects the feature transforms applied before selection and
// recognition. Both commands must use the same options for a table.
type prepOptions struct {
	normalize bool
	delta     int
}

func (p *prepOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.normalize, "normalize", false, "z-score features with statistics of the training words")
	cmd.Flags().IntVar(&p.delta, "delta", 0, "append delta features with this window (0 disables)")
}

// loadCorpus reads path and applies the feature transforms to both sections.
func (p prepOptions) loadCorpus(path string) (*corpus.Corpus, *corpus.TestSet, error) {
	c, ts, err := corpus.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if p.normalize {
		stats, err := feature.ComputeStats(c)
		if err != nil {
			return nil, nil, err
		}
		if c, err = feature.Map(c, stats.Apply); err != nil {
			return nil, nil, err
		}
		ts = feature.MapTestSet(ts, stats.Apply)
	}
	if p.delta > 0 {
		withDelta := func(seq corpus.Sequence) corpus.Sequence {
			return feature.AppendDelta(seq, p.delta)
		}
		if c, err = feature.Map(c, withDelta); err != nil {
			return nil, nil, err
		}
		ts = feature.MapTestSet(ts, withDelta)
	}
	return c, ts, nil
}
