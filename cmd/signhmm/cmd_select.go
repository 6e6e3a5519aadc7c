package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ieee0824/signhmm/corpus"
	"github.com/ieee0824/signhmm/hmm"
	"github.com/ieee0824/signhmm/selector"
)

func newSelectCommand(a *app) *cobra.Command {
	var (
		corpusPath string
		output     string
		prep       prepOptions
	)
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select a model per word and save the model table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := prep.loadCorpus(corpusPath)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}
			table, err := a.buildTable(cmd.Context(), c)
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			if err := hmm.SaveTable(f, table); err != nil {
				return fmt.Errorf("save table: %w", err)
			}
			a.logger.Info("model table saved", "path", output, "words", table.Len(), "vocabulary", c.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&corpusPath, "corpus", "data/corpus.yaml", "corpus file")
	cmd.Flags().StringVarP(&output, "output", "o", "data/models.gob", "output model table")
	prep.register(cmd)
	return cmd
}

func (a *app) buildTable(ctx context.Context, c *corpus.Corpus) (*selector.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sc, kind, err := a.cfg.Selection()
	if err != nil {
		return nil, err
	}
	a.logger.Info("selecting models",
		"selector", kind,
		"words", c.Len(),
		"min_states", sc.MinStates,
		"max_states", sc.MaxStates,
		"random_state", sc.RandomState,
	)
	return selector.BuildTable(ctx, c, kind, sc, a.cfg.Trainer(), a.logger)
}
