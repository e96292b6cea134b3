// Package dice evaluates dice notation strings such as "4d6kh3+2" or
// "{1d20+5,1d20+5}kh" into a typed number with an annotated trace.
//
// Evaluation runs in three stages: the standardized text is carved into a
// precedence-correct tree (package parser), the tree is turned into typed
// resolution nodes (package grammar), and the nodes are resolved against an
// injected random source (package eval).
package dice

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sansecio/dicego/eval"
	"github.com/sansecio/dicego/grammar"
	"github.com/sansecio/dicego/parser"
	"github.com/sansecio/dicego/roll"
)

var processor = grammar.New()

// Standardize strips whitespace and lower-cases input. It is applied by
// ResolveDiceString and exposed so callers can echo the canonical form.
func Standardize(input string) string {
	return parser.Standardize(input)
}

// Parse carves and processes input without rolling anything.
func Parse(input string) (eval.Node, error) {
	carved, err := parser.Carve(parser.Standardize(input))
	if err != nil {
		return nil, err
	}
	if carved == nil {
		return eval.StaticNumber{}, nil
	}
	return processor.Process(carved)
}

// ResolveDiceString evaluates input. Empty input resolves to an untyped 0
// with empty text. Any error aborts the whole evaluation.
func ResolveDiceString(input string, tracker eval.Tracker, formatter eval.Formatter, src roll.Source) (*eval.Number, error) {
	text := parser.Standardize(input)
	if text == "" {
		return &eval.Number{}, nil
	}

	node, err := Parse(text)
	if err != nil {
		return nil, err
	}
	ctx := &eval.Context{Tracker: tracker, Formatter: formatter, Source: src}
	v, err := eval.Resolve(node, ctx)
	if err != nil {
		return nil, err
	}
	return eval.ToNumber(v, formatter)
}

// Roller evaluates expressions with a shared configuration. A fresh die
// count tracker is used for every call.
type Roller struct {
	MaxDice   int
	Formatter eval.Formatter
	Source    roll.Source
	Logger    *zap.Logger
}

// Result is one evaluated expression.
type Result struct {
	ID     string
	Input  string // standardized input
	Number *eval.Number
	Dice   int // dice rolled, including rerolls and explosions
}

// Roll evaluates input. Roller is not safe for concurrent use unless its
// Source is.
func (r *Roller) Roll(input string) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	res := &Result{ID: uuid.NewString(), Input: parser.Standardize(input)}
	tracker := eval.NewCountTracker(r.MaxDice)

	n, err := ResolveDiceString(res.Input, tracker, r.Formatter, r.Source)
	res.Dice = tracker.Count()
	if err != nil {
		logger.Debug("roll failed",
			zap.String("roll_id", res.ID),
			zap.String("input", res.Input),
			zap.Int("dice", res.Dice),
			zap.Error(err),
		)
		return nil, fmt.Errorf("rolling %q: %w", res.Input, err)
	}
	res.Number = n

	logger.Debug("rolled",
		zap.String("roll_id", res.ID),
		zap.String("input", res.Input),
		zap.Float64("value", n.Value),
		zap.Stringer("type", n.Type),
		zap.Int("dice", res.Dice),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}
