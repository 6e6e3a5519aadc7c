package selector

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ieee0824/signhmm/corpus"
)

// BuildTable runs the kind strategy for every word of c and collects the
// winners in corpus order. Words are selected concurrently, at most
// cfg.Workers at a time. A word whose selection yields no model is logged and
// left out of the table.
func BuildTable(ctx context.Context, c *corpus.Corpus, kind Kind, cfg Config, trainer Trainer, logger *slog.Logger) (*Table, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	words := c.Words()
	results := make([]Model, len(words))

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i, word := range words {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			base, err := NewBase(c, word, cfg, trainer, logger)
			if err != nil {
				return err
			}
			sel, err := New(kind, base)
			if err != nil {
				return err
			}
			results[i] = sel.Select()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := NewTable()
	for i, word := range words {
		m := results[i]
		if m == nil {
			logger.Warn("no model selected", "word", word, "selector", kind)
			continue
		}
		logger.Info("model selected", "word", word, "selector", kind, "states", m.NumStates())
		table.Add(word, m)
	}
	return table, nil
}
