package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/ieee0824/signhmm/corpus"
)

type genOptions struct {
	words     []string
	sequences int
	test      int
	dim       int
	minFrames int
	maxFrames int
	spread    float64
	seed      int64
	output    string
}

func newGenCorpusCommand(a *app) *cobra.Command {
	var o genOptions
	cmd := &cobra.Command{
		Use:   "gencorpus",
		Short: "Write a synthetic corpus for smoke runs",
		Long: `Writes a corpus whose words are trajectories through a few random
waypoints in feature space, plus a labeled test section.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.minFrames < 1 || o.maxFrames < o.minFrames {
				return fmt.Errorf("invalid frame range %d..%d", o.minFrames, o.maxFrames)
			}
			if o.dim < 1 || o.sequences < 1 || len(o.words) == 0 {
				return fmt.Errorf("need at least one word, one sequence and one dimension")
			}
			c, ts, err := generate(o)
			if err != nil {
				return err
			}
			f, err := os.Create(o.output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			if err := corpus.Save(f, c, ts); err != nil {
				return err
			}
			a.logger.Info("corpus written", "path", o.output, "words", c.Len(), "test_items", ts.Len())
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&o.words, "words", []string{"BOOK", "CHOCOLATE", "JOHN", "VEGETABLE"}, "vocabulary")
	cmd.Flags().IntVar(&o.sequences, "sequences", 6, "training sequences per word")
	cmd.Flags().IntVar(&o.test, "test", 2, "test items per word")
	cmd.Flags().IntVar(&o.dim, "dim", 4, "feature dimension")
	cmd.Flags().IntVar(&o.minFrames, "min-frames", 8, "shortest sequence")
	cmd.Flags().IntVar(&o.maxFrames, "max-frames", 16, "longest sequence")
	cmd.Flags().Float64Var(&o.spread, "spread", 0.5, "per-frame noise standard deviation")
	cmd.Flags().Int64Var(&o.seed, "seed", 14, "random seed")
	cmd.Flags().StringVarP(&o.output, "output", "o", "data/corpus.yaml", "output file")
	return cmd
}

// generate draws every word as a path through three waypoints; each
// sequence walks the path at its own speed with Gaussian noise.
func generate(o genOptions) (*corpus.Corpus, *corpus.TestSet, error) {
	rng := rand.New(rand.NewSource(o.seed))
	const waypoints = 3

	paths := make(map[string][][]float64, len(o.words))
	for _, w := range o.words {
		path := make([][]float64, waypoints)
		for i := range path {
			path[i] = make([]float64, o.dim)
			for d := range path[i] {
				path[i][d] = rng.Float64()*10 - 5
			}
		}
		paths[w] = path
	}

	draw := func(path [][]float64) corpus.Sequence {
		T := o.minFrames + rng.Intn(o.maxFrames-o.minFrames+1)
		seq := make(corpus.Sequence, T)
		for t := range seq {
			pos := float64(t) / float64(T) * float64(len(path))
			wp := path[min(int(pos), len(path)-1)]
			row := make([]float64, o.dim)
			for d := range row {
				row[d] = wp[d] + o.spread*rng.NormFloat64()
			}
			seq[t] = row
		}
		return seq
	}

	data := make(map[string][]corpus.Sequence, len(o.words))
	ts := &corpus.TestSet{}
	for _, w := range o.words {
		for i := 0; i < o.sequences; i++ {
			data[w] = append(data[w], draw(paths[w]))
		}
	}
	for i := 0; i < o.test; i++ {
		for _, w := range o.words {
			ts.Items = append(ts.Items, corpus.Item{Label: w, Sequence: draw(paths[w])})
		}
	}
	c, err := corpus.New(data)
	if err != nil {
		return nil, nil, err
	}
	return c, ts, nil
}
