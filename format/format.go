// Package format provides the trace decorations applied to discarded,
// exploded, successful, and failed entries.
package format

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sansecio/dicego/eval"
)

// ByName returns the formatter registered under name: "plain", "markdown",
// or "ansi".
func ByName(name string) (eval.Formatter, error) {
	switch strings.ToLower(name) {
	case "plain":
		return Plain{}, nil
	case "markdown", "md", "":
		return Markdown{}, nil
	case "ansi":
		return NewANSI(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}

// Plain leaves text untouched.
type Plain struct{}

func (Plain) AddDiscardedFormatting(text string) string       { return text }
func (Plain) AddExplodeFormatting(text string, _ bool) string { return text }
func (Plain) AddSuccessFormatting(text string, _ bool) string { return text }
func (Plain) AddFailureFormatting(text string, _ bool) string { return text }

// Markdown decorates text with chat-style markdown: strikethrough for
// discarded entries, and bold, underline, or italics for exploded,
// successful, or failed dice.
type Markdown struct{}

func (Markdown) AddDiscardedFormatting(text string) string {
	return "~~" + strings.ReplaceAll(text, "~~", "") + "~~"
}

func (Markdown) AddExplodeFormatting(text string, isDie bool) string {
	return wrapDie(text, "**", isDie)
}

func (Markdown) AddSuccessFormatting(text string, isDie bool) string {
	return wrapDie(text, "__", isDie)
}

func (Markdown) AddFailureFormatting(text string, isDie bool) string {
	return wrapDie(text, "*", isDie)
}

// FormatOperator escapes "*" so multiplication is not read as emphasis.
func (Markdown) FormatOperator(op byte) string {
	if op == '*' {
		return `\*`
	}
	return string(op)
}

func wrapDie(text, mark string, isDie bool) string {
	if !isDie || text == "" {
		return text
	}
	return mark + text + mark
}

// ANSI decorates text with terminal escape sequences.
type ANSI struct {
	discarded *color.Color
	exploded  *color.Color
	success   *color.Color
	failure   *color.Color
}

// NewANSI returns an ANSI formatter. Colors are emitted even when stdout is
// not a terminal.
func NewANSI() *ANSI {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		c.EnableColor()
		return c
	}
	return &ANSI{
		discarded: mk(color.CrossedOut, color.Faint),
		exploded:  mk(color.Bold),
		success:   mk(color.Underline, color.FgGreen),
		failure:   mk(color.Italic, color.FgRed),
	}
}

func (a *ANSI) AddDiscardedFormatting(text string) string {
	return a.discarded.Sprint(text)
}

func (a *ANSI) AddExplodeFormatting(text string, isDie bool) string {
	return a.sprintDie(a.exploded, text, isDie)
}

func (a *ANSI) AddSuccessFormatting(text string, isDie bool) string {
	return a.sprintDie(a.success, text, isDie)
}

func (a *ANSI) AddFailureFormatting(text string, isDie bool) string {
	return a.sprintDie(a.failure, text, isDie)
}

func (a *ANSI) sprintDie(c *color.Color, text string, isDie bool) string {
	if !isDie || text == "" {
		return text
	}
	return c.Sprint(text)
}
