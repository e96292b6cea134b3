package dice

import (
	"math"
	"strings"

	"github.com/sansecio/dicego/eval"
)

// Describe renders the headline value of n: a bare number, "N Successes",
// "N Failures" (for a negative success count), or "N Matches".
func Describe(n *eval.Number) string {
	switch n.Type {
	case eval.MatchCount:
		return eval.FormatNumber(n.Value) + " Matches"
	case eval.SuccessFail:
		if n.Value < 0 {
			return eval.FormatNumber(math.Abs(n.Value)) + " Failures"
		}
		return eval.FormatNumber(n.Value) + " Successes"
	default:
		return eval.FormatNumber(n.Value)
	}
}

// Report renders a markdown message echoing the input, the headline result,
// and the trace.
func Report(res *Result) string {
	var sb strings.Builder
	sb.WriteString("> `")
	sb.WriteString(res.Input)
	sb.WriteString("`\n**Result: ")
	sb.WriteString(Describe(res.Number))
	sb.WriteString("**")
	if res.Number.Text != "" {
		sb.WriteString("\n> ")
		sb.WriteString(res.Number.Text)
	}
	return sb.String()
}

// Truncate shortens s to at most max bytes, marking the cut with "...".
// A max of zero or less leaves s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
