package eval

import (
	"cmp"
	"slices"

	"github.com/sansecio/dicego/diceerr"
)

func resolveExplode(n *Explode, ctx *Context) (Value, error) {
	dice, err := resolveDice(n.Child, ctx, "explode")
	if err != nil {
		return nil, err
	}
	for _, d := range dice {
		if d.Custom() {
			return nil, diceerr.Semanticf("custom dice cannot explode")
		}
	}

	explodes := func(v, max int) bool {
		if n.Condition == nil {
			return v >= max
		}
		return n.Condition.Matches(float64(v))
	}

	switch n.Mode {
	case ExplodeCompounding:
		for _, d := range dice {
			if d.Discarded {
				continue
			}
			for explodes(d.Rolls[len(d.Rolls)-1], d.Max) {
				if err := ctx.Tracker.NotifyNewDice(1); err != nil {
					return nil, err
				}
				d.Exploded = true
				d.Roll(ctx.Source)
			}
		}

	case ExplodePenetrating:
		for i := 0; i < len(dice); i++ {
			d := dice[i]
			if d.Discarded || !explodes(d.Rolls[0], d.Max) {
				continue
			}
			if err := ctx.Tracker.NotifyNewDice(1); err != nil {
				return nil, err
			}
			d.Exploded = true
			next := d.UnrolledCopy()
			next.Roll(ctx.Source)
			next.AddResult(-1)
			dice = append(dice, next)
		}

	default:
		// New dice are appended while iterating, so they explode too.
		for i := 0; i < len(dice); i++ {
			d := dice[i]
			if d.Discarded {
				continue
			}
			for _, r := range d.Rolls {
				if !explodes(r, d.Max) {
					continue
				}
				if err := ctx.Tracker.NotifyNewDice(1); err != nil {
					return nil, err
				}
				d.Exploded = true
				next := d.UnrolledCopy()
				next.Roll(ctx.Source)
				dice = append(dice, next)
			}
		}
	}
	return dice, nil
}

func resolveReroll(n *Reroll, ctx *Context) (Value, error) {
	dice, err := resolveDice(n.Child, ctx, "reroll")
	if err != nil {
		return nil, err
	}

	initial := len(dice)
	for i := 0; i < len(dice); i++ {
		if n.Once && i >= initial {
			break
		}
		d := dice[i]
		if d.Discarded || !matchesAny(n.Conditions, float64(d.Value)) {
			continue
		}
		if err := ctx.Tracker.NotifyNewDice(1); err != nil {
			return nil, err
		}
		d.Discarded = true
		next := d.UnrolledCopy()
		next.Roll(ctx.Source)
		dice = append(dice, next)
	}
	return dice, nil
}

func resolveKeepDropConditional(n *KeepDropConditional, ctx *Context) (Value, error) {
	v, err := resolveList(n.Child, ctx, "keep/drop")
	if err != nil {
		return nil, err
	}
	es, err := entries(v)
	if err != nil {
		return nil, err
	}
	for _, e := range es {
		if !e.isDiscarded() && matchesAny(n.Conditions, e.amount()) != n.Keep {
			e.discard(ctx.Formatter)
		}
	}
	return v, nil
}

func resolveKeepDropHighLow(n *KeepDropHighLow, ctx *Context) (Value, error) {
	v, err := resolveList(n.Child, ctx, "keep/drop")
	if err != nil {
		return nil, err
	}
	es, err := entries(v)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(es)
	slices.SortStableFunc(sorted, func(a, b entry) int {
		c := cmp.Compare(a.amount(), b.amount())
		if n.High {
			return -c
		}
		return c
	})

	counted := 0
	for _, e := range sorted {
		if e.isDiscarded() {
			continue
		}
		if counted < n.Count {
			counted++
			if !n.Keep {
				e.discard(ctx.Formatter)
			}
			continue
		}
		if n.Keep {
			e.discard(ctx.Formatter)
		}
	}
	return v, nil
}

func resolveMatcher(n *NumberMatcher, ctx *Context) (Value, error) {
	v, err := resolveList(n.Child, ctx, "match")
	if err != nil {
		return nil, err
	}
	nums := asNumbers(v, ctx.Formatter)

	type group struct {
		value   float64
		members Numbers
	}
	var (
		groups    []*group
		index     = make(map[float64]*group)
		discarded Numbers
	)
	for _, num := range nums {
		if num.Discarded {
			discarded = append(discarded, num)
			continue
		}
		g, ok := index[num.Value]
		if !ok {
			g = &group{value: num.Value}
			index[num.Value] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, num)
	}
	slices.SortStableFunc(groups, func(a, b *group) int {
		if c := cmp.Compare(len(b.members), len(a.members)); c != 0 {
			return c
		}
		return cmp.Compare(b.value, a.value)
	})

	ordered := make(Numbers, 0, len(nums))
	for _, g := range groups {
		ordered = append(ordered, g.members...)
	}
	ordered = append(ordered, discarded...)
	if len(ordered) == 0 {
		return nil, diceerr.Semanticf("cannot match values of an empty list")
	}

	res := &Number{Text: joinText(ordered)}
	if n.MatchCount {
		res.Type = MatchCount
		for _, g := range groups {
			if len(g.members) > 1 {
				res.Value++
			}
		}
		return res, nil
	}
	for _, num := range ordered {
		if !num.Discarded {
			res.Value += num.Value
		}
	}
	return res, nil
}

func resolveSuccessFail(n *SuccessFailCounter, ctx *Context) (Value, error) {
	v, err := resolveList(n.Child, ctx, "success/failure")
	if err != nil {
		return nil, err
	}
	_, isDie := v.(Dice)
	nums := asNumbers(v, ctx.Formatter)

	res := &Number{Type: SuccessFail}
	for _, num := range nums {
		if num.Discarded {
			continue
		}
		switch {
		case n.Success.Matches(num.Value):
			num.Text = ctx.Formatter.AddSuccessFormatting(num.Text, isDie)
			res.Value++
		case n.Failure != nil && n.Failure.Matches(num.Value):
			num.Text = ctx.Formatter.AddFailureFormatting(num.Text, isDie)
			res.Value--
		}
	}
	res.Text = joinText(nums)
	return res, nil
}

func asNumbers(v Value, f Formatter) Numbers {
	switch v := v.(type) {
	case Dice:
		return diceNumbers(v, f)
	case Numbers:
		return v
	case *Number:
		return Numbers{v}
	default:
		return nil
	}
}
