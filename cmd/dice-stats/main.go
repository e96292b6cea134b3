package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sansecio/dicego/cmd/internal"
	"github.com/sansecio/dicego/dice"
	"github.com/sansecio/dicego/eval"
	"github.com/sansecio/dicego/format"
	"github.com/sansecio/dicego/roll"
)

var (
	samples  = flag.Int("n", 10000, "number of rolls")
	seed     = flag.Uint64("seed", 1, "source seed")
	maxDice  = flag.Int("max-dice", 1000, "maximum dice per roll (0 for unlimited)")
	barWidth = flag.Int("width", 50, "width of the longest bar")
)

func main() {
	flag.Parse()
	expr := strings.Join(flag.Args(), " ")
	if expr == "" || *samples < 1 {
		fmt.Fprintf(os.Stderr, "usage: dice-stats [-n rolls] [-seed n] <expression>\n")
		os.Exit(1)
	}

	r := &dice.Roller{
		MaxDice:   *maxDice,
		Formatter: format.Plain{},
		Source:    roll.NewSeeded(*seed),
	}

	h := internal.Histogram{}
	var diceRolled int
	for range *samples {
		res, err := r.Roll(expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		h.Add(res.Number.Value)
		diceRolled += res.Dice
	}

	if h.Total() == 0 {
		fmt.Fprintf(os.Stderr, "no numeric results\n")
		os.Exit(1)
	}
	printTable(h)

	mode := h.ByCount()[0]
	fmt.Fprintf(os.Stderr, "%d rolls of %s: mean %.3f, mode %s, %d dice\n",
		h.Total(), dice.Standardize(expr), h.Mean(), eval.FormatNumber(mode), diceRolled)
}

func printTable(h internal.Histogram) {
	total := float64(h.Total())
	peak := h[h.ByCount()[0]]
	width := *barWidth
	for _, v := range h.Values() {
		n := h[v]
		bar := strings.Repeat("#", max(1, n*width/peak))
		fmt.Printf("%8s %8d %6.2f%% %s\n", eval.FormatNumber(v), n, 100*float64(n)/total, bar)
	}
}
