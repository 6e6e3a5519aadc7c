// Package selector chooses, for each vocabulary word, the number of hidden
// states of its sequence model and assembles the winners into a Table.
//
// Fitting and scoring are injected through Trainer and Model, so every
// strategy runs unchanged against the real HMM trainer or a test stub.
package selector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/ieee0824/signhmm/corpus"
)

var (
	// ErrUnknownWord is returned when a selector is built for a word the corpus lacks.
	ErrUnknownWord = errors.New("selector: unknown word")
	// ErrUnknownKind is returned for an unrecognised strategy name.
	ErrUnknownKind = errors.New("selector: unknown kind")

	errNilModel  = errors.New("selector: trainer returned no model")
	errNonFinite = errors.New("selector: non-finite score")
)

// Model is a fitted sequence model.
type Model interface {
	NumStates() int
	// Score returns the log-likelihood of the concatenated sequences in X split by lengths.
	Score(X [][]float64, lengths []int) (float64, error)
}

// Trainer fits a model with a fixed number of hidden states.
// Implementations must be safe for concurrent use when BuildTable runs with
// more than one worker.
type Trainer interface {
	Fit(X [][]float64, lengths []int, states int, seed int64) (Model, error)
}

// Selector is one state-count selection strategy for one word.
type Selector interface {
	// Select returns the winning model, or nil when every candidate failed.
	Select() Model
	// Candidates evaluates every candidate state count.
	Candidates() []Candidate
}

// Orientation decides which end of the BIC scale wins.
type Orientation int

const (
	// PreferHigherBIC keeps the largest BIC value.
	PreferHigherBIC Orientation = iota
	// PreferLowerBIC keeps the smallest BIC value, the textbook convention.
	PreferLowerBIC
)

func (o Orientation) String() string {
	if o == PreferLowerBIC {
		return "min"
	}
	return "max"
}

// ParseOrientation maps "max" and "min" to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "max", "":
		return PreferHigherBIC, nil
	case "min":
		return PreferLowerBIC, nil
	}
	return 0, fmt.Errorf("selector: unknown BIC orientation %q", s)
}

// Config holds selection hyperparameters.
type Config struct {
	NConstant   int   // state count of the constant strategy
	MinStates   int   // inclusive lower search bound
	MaxStates   int   // inclusive upper search bound
	RandomState int64 // seed for fitting and fold shuffling
	Verbose     bool
	Folds       int // cross-validation folds
	BIC         Orientation
	Workers     int // words selected concurrently by BuildTable
}

// DefaultConfig returns the default hyperparameters.
func DefaultConfig() Config {
	return Config{
		NConstant:   3,
		MinStates:   2,
		MaxStates:   10,
		RandomState: 14,
		Folds:       3,
		BIC:         PreferHigherBIC,
		Workers:     runtime.GOMAXPROCS(0),
	}
}

// Base carries one word's data and the shared hyperparameters.
type Base struct {
	corpus    *corpus.Corpus
	word      string
	sequences []corpus.Sequence
	X         [][]float64
	lengths   []int
	cfg       Config
	trainer   Trainer
	logger    *slog.Logger
}

// NewBase prepares selection for word.
func NewBase(c *corpus.Corpus, word string, cfg Config, trainer Trainer, logger *slog.Logger) (*Base, error) {
	seqs, ok := c.Sequences(word)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	if logger == nil {
		logger = slog.Default()
	}
	X, lengths, _ := c.XLengths(word)
	return &Base{
		corpus:    c,
		word:      word,
		sequences: seqs,
		X:         X,
		lengths:   lengths,
		cfg:       cfg,
		trainer:   trainer,
		logger:    logger.With("word", word),
	}, nil
}

// BaseModel fits exactly n states on the word's full data. It returns nil when
// the trainer fails.
func (b *Base) BaseModel(n int) Model {
	m, _ := b.baseModel(n)
	return m
}

// baseModel is BaseModel keeping the failure for the candidate record.
func (b *Base) baseModel(n int) (Model, error) {
	return b.fit(b.X, b.lengths, n)
}

func (b *Base) fit(X [][]float64, lengths []int, n int) (Model, error) {
	m, err := b.trainer.Fit(X, lengths, n, b.cfg.RandomState)
	if err == nil && m == nil {
		err = errNilModel
	}
	if err != nil {
		b.notice("fit failed", "states", n, "error", err)
		return nil, err
	}
	b.notice("model created", "states", n)
	return m, nil
}

// scoreFailed reports a model that could not evaluate data. It does not
// change control flow.
func (b *Base) scoreFailed(n int, err error, args ...any) {
	b.logger.Warn("score failed", append([]any{"states", n, "error", err}, args...)...)
}

// notice logs at info level when verbose, debug otherwise.
func (b *Base) notice(msg string, args ...any) {
	level := slog.LevelDebug
	if b.cfg.Verbose {
		level = slog.LevelInfo
	}
	b.logger.Log(context.Background(), level, msg, args...)
}

// stateRange lists the candidate state counts.
func (b *Base) stateRange() []int {
	var out []int
	for n := b.cfg.MinStates; n <= b.cfg.MaxStates; n++ {
		out = append(out, n)
	}
	return out
}

// Kind names a selection strategy.
type Kind string

const (
	KindConstant Kind = "constant"
	KindBIC      Kind = "bic"
	KindDIC      Kind = "dic"
	KindCV       Kind = "cv"
)

// Kinds lists every strategy.
func Kinds() []Kind { return []Kind{KindConstant, KindBIC, KindDIC, KindCV} }

// ParseKind validates a strategy name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New builds the strategy named by kind over base.
func New(kind Kind, base *Base) (Selector, error) {
	switch kind {
	case KindConstant:
		return &Constant{base}, nil
	case KindBIC:
		return &BIC{base}, nil
	case KindDIC:
		return &DIC{base}, nil
	case KindCV:
		return &CV{base}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
