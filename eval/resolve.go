package eval

import (
	"math"

	"github.com/sansecio/dicego/diceerr"
	"github.com/sansecio/dicego/roll"
)

// Resolve evaluates n depth-first, left to right. Draws are taken from
// ctx.Source in exactly that order, so a fixed source reproduces a roll.
func Resolve(n Node, ctx *Context) (Value, error) {
	switch n := n.(type) {
	case DiceRoll:
		if err := ctx.Tracker.NotifyNewDice(n.Count); err != nil {
			return nil, err
		}
		return Dice(roll.RollStandard(ctx.Source, n.Count, n.Min, n.Max)), nil

	case CustomDiceRoll:
		if len(n.Faces) == 0 {
			return nil, diceerr.Semanticf("custom dice need at least one face")
		}
		if err := ctx.Tracker.NotifyNewDice(n.Count); err != nil {
			return nil, err
		}
		return Dice(roll.RollCustom(ctx.Source, n.Count, n.Faces)), nil

	case StaticNumber:
		return &Number{Value: n.Value, Text: FormatNumber(n.Value)}, nil

	case *Explode:
		return resolveExplode(n, ctx)

	case *Reroll:
		return resolveReroll(n, ctx)

	case *KeepDropConditional:
		return resolveKeepDropConditional(n, ctx)

	case *KeepDropHighLow:
		return resolveKeepDropHighLow(n, ctx)

	case *NumberMatcher:
		return resolveMatcher(n, ctx)

	case *SuccessFailCounter:
		return resolveSuccessFail(n, ctx)

	case *Bracket:
		v, err := Resolve(n.Child, ctx)
		if err != nil {
			return nil, err
		}
		if num, ok := v.(*Number); ok && num.Text != "" {
			num.Text = "(" + num.Text + ")"
		}
		return v, nil

	case *Function:
		return resolveFunction(n, ctx)

	case *NumberList:
		nums := make(Numbers, 0, len(n.Entries))
		for _, e := range n.Entries {
			num, err := resolveNumber(e, ctx)
			if err != nil {
				return nil, err
			}
			nums = append(nums, num)
		}
		return nums, nil

	case *Math:
		return resolveMath(n, ctx)

	default:
		return nil, diceerr.Semanticf("cannot resolve node %T", n)
	}
}

func resolveNumber(n Node, ctx *Context) (*Number, error) {
	v, err := Resolve(n, ctx)
	if err != nil {
		return nil, err
	}
	return ToNumber(v, ctx.Formatter)
}

// resolveDice resolves a child that must produce dice.
func resolveDice(n Node, ctx *Context, modifier string) (Dice, error) {
	if s := n.Shape(); s != ShapeDiceRoll {
		return nil, diceerr.Semanticf("%s can only be applied to dice, not a %s", modifier, s)
	}
	v, err := Resolve(n, ctx)
	if err != nil {
		return nil, err
	}
	dice, ok := v.(Dice)
	if !ok {
		return nil, diceerr.Semanticf("%s expected dice, got %T", modifier, v)
	}
	return dice, nil
}

// resolveList resolves a child that must produce dice or a number list.
func resolveList(n Node, ctx *Context, modifier string) (Value, error) {
	if s := n.Shape(); s != ShapeDiceRoll && s != ShapeNumberList {
		return nil, diceerr.Semanticf("%s can only be applied to dice or a list, not a %s", modifier, s)
	}
	return Resolve(n, ctx)
}

func resolveFunction(n *Function, ctx *Context) (Value, error) {
	num, err := resolveNumber(n.Child, ctx)
	if err != nil {
		return nil, err
	}

	var v float64
	switch n.Name {
	case Floor:
		v = math.Floor(num.Value)
	case Ceil:
		v = math.Ceil(num.Value)
	case Round:
		v = math.Floor(num.Value + 0.5)
	case Abs:
		v = math.Abs(num.Value)
	default:
		return nil, diceerr.Semanticf("unknown function %q", n.Name)
	}
	return &Number{Value: v, Text: string(n.Name) + "(" + num.Text + ")", Type: num.Type}, nil
}

func resolveMath(n *Math, ctx *Context) (Value, error) {
	if n.Shape() == ShapeDiceRoll {
		left, err := resolveDice(n.Left, ctx, "addition")
		if err != nil {
			return nil, err
		}
		right, err := resolveDice(n.Right, ctx, "addition")
		if err != nil {
			return nil, err
		}
		return append(append(Dice{}, left...), right...), nil
	}

	left, err := resolveNumber(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := resolveNumber(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	var v float64
	switch n.Op {
	case '+':
		v = left.Value + right.Value
	case '-':
		v = left.Value - right.Value
	case '*':
		v = left.Value * right.Value
	case '/':
		v = left.Value / right.Value
	case '%':
		v = math.Mod(left.Value, right.Value)
	case '^':
		v = math.Pow(left.Value, right.Value)
	default:
		return nil, diceerr.Semanticf("unknown operator %q", n.Op)
	}

	typ := Untyped
	if left.Type == right.Type {
		typ = left.Type
	}
	op := string(n.Op)
	if of, ok := ctx.Formatter.(OperatorFormatter); ok {
		op = of.FormatOperator(n.Op)
	}
	return &Number{
		Value: v,
		Text:  left.Text + " " + op + " " + right.Text,
		Type:  typ,
	}, nil
}
