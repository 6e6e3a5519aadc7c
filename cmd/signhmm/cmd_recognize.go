package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ieee0824/signhmm/corpus"
	"github.com/ieee0824/signhmm/hmm"
	"github.com/ieee0824/signhmm/recognizer"
	"github.com/ieee0824/signhmm/selector"
)

type recognizeOptions struct {
	corpusPath string
	showScores bool
	strict     bool
	prep       prepOptions
}

func (o *recognizeOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.corpusPath, "corpus", "data/corpus.yaml", "corpus file with a test section")
	cmd.Flags().BoolVar(&o.showScores, "scores", false, "print every word's log-likelihood per item")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "exit non-zero when a labeled item is misrecognized")
	o.prep.register(cmd)
}

func newRecognizeCommand(a *app) *cobra.Command {
	var (
		opts      recognizeOptions
		tablePath string
	)
	cmd := &cobra.Command{
		Use:   "recognize",
		Short: "Classify the test items of a corpus with a saved model table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ts, err := opts.prep.loadCorpus(opts.corpusPath)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}
			f, err := os.Open(tablePath)
			if err != nil {
				return fmt.Errorf("open model table: %w", err)
			}
			defer f.Close()
			table, err := hmm.LoadTable(f)
			if err != nil {
				return fmt.Errorf("load model table: %w", err)
			}
			return a.recognize(cmd.OutOrStdout(), table, ts, opts)
		},
	}
	cmd.Flags().StringVarP(&tablePath, "table", "t", "data/models.gob", "model table written by select")
	opts.register(cmd)
	return cmd
}

func newRunCommand(a *app) *cobra.Command {
	var opts recognizeOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Select models and classify the test items in one pass",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, ts, err := opts.prep.loadCorpus(opts.corpusPath)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}
			table, err := a.buildTable(cmd.Context(), c)
			if err != nil {
				return err
			}
			return a.recognize(cmd.OutOrStdout(), table, ts, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) recognize(w io.Writer, table *selector.Table, ts *corpus.TestSet, opts recognizeOptions) error {
	if ts.Len() == 0 {
		return fmt.Errorf("corpus %s has no test items", opts.corpusPath)
	}
	res := recognizer.Recognize(table, recognizer.Items(ts))
	a.logger.Info("recognized", "items", ts.Len(), "words", table.Len())

	labels := ts.Labels()
	for i, guess := range res.Guesses {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, labels[i], guess)
		if opts.showScores {
			words := make([]string, 0, len(res.Probabilities[i]))
			for word := range res.Probabilities[i] {
				words = append(words, word)
			}
			sort.Strings(words)
			for _, word := range words {
				fmt.Fprintf(w, "\t\t%s=%.3f\n", word, res.Probabilities[i][word])
			}
		}
	}

	for _, l := range labels {
		if l == "" {
			return nil
		}
	}
	report, err := recognizer.Evaluate(res, labels)
	if err != nil {
		return err
	}
	if err := report.Write(w); err != nil {
		return err
	}
	if opts.strict && report.Errors > 0 {
		return &missError{errors: report.Errors, total: report.Total}
	}
	return nil
}
