package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sansecio/dicego/diceerr"
	"github.com/sansecio/dicego/eval"
	"github.com/sansecio/dicego/parser"
)

func mustProcess(t *testing.T, input string) eval.Node {
	t.Helper()
	carved, err := parser.Carve(parser.Standardize(input))
	require.NoError(t, err, "carving %q", input)
	n, err := New().Process(carved)
	require.NoError(t, err, "processing %q", input)
	return n
}

func dice(count, sides int) eval.DiceRoll {
	return eval.DiceRoll{Count: count, Min: 1, Max: sides}
}

func cp(op byte, v int) eval.Condition {
	return eval.Condition{Op: op, Value: v}
}

func cpp(op byte, v int) *eval.Condition {
	return &eval.Condition{Op: op, Value: v}
}

func TestProcessLeaf(t *testing.T) {
	tests := []struct {
		input string
		want  eval.Node
	}{
		{"5", eval.StaticNumber{Value: 5}},
		{"-12", eval.StaticNumber{Value: -12}},
		{"1.25", eval.StaticNumber{Value: 1.25}},
		{"-0.5", eval.StaticNumber{Value: -0.5}},
		{"4d6", dice(4, 6)},
		{"d20", dice(1, 20)},
		{"0d6", dice(0, 6)},
		{"4df", eval.DiceRoll{Count: 4, Min: -1, Max: 1}},
		{"2d[1,3,5]", eval.CustomDiceRoll{Count: 2, Faces: []int{1, 3, 5}}},
		{"d[-1,0,1]", eval.CustomDiceRoll{Count: 1, Faces: []int{-1, 0, 1}}},
		{"4d6kh3", &eval.KeepDropHighLow{Child: dice(4, 6), High: true, Keep: true, Count: 3}},
		{"4d6dl", &eval.KeepDropHighLow{Child: dice(4, 6), Count: 1}},
		{"4d6kl2", &eval.KeepDropHighLow{Child: dice(4, 6), Keep: true, Count: 2}},
		{"4d6!", &eval.Explode{Mode: eval.ExplodeRegular, Child: dice(4, 6)}},
		{"4d6!5", &eval.Explode{Mode: eval.ExplodeRegular, Child: dice(4, 6), Condition: cpp('=', 5)}},
		{"4d6!!>5", &eval.Explode{Mode: eval.ExplodeCompounding, Child: dice(4, 6), Condition: cpp('>', 5)}},
		{"4d6!p", &eval.Explode{Mode: eval.ExplodePenetrating, Child: dice(4, 6)}},
		{"4d6r1r2", &eval.Reroll{Child: dice(4, 6), Conditions: []eval.Condition{cp('=', 1), cp('=', 2)}}},
		{"4d6ro<3", &eval.Reroll{Child: dice(4, 6), Conditions: []eval.Condition{cp('<', 3)}, Once: true}},
		{"4d6ro1ro2", &eval.Reroll{Child: dice(4, 6), Conditions: []eval.Condition{cp('=', 1), cp('=', 2)}, Once: true}},
		{"4d6r1ro2", &eval.Reroll{
			Child:      &eval.Reroll{Child: dice(4, 6), Conditions: []eval.Condition{cp('=', 1)}},
			Conditions: []eval.Condition{cp('=', 2)},
			Once:       true,
		}},
		{"4d6k>3k<6", &eval.KeepDropConditional{Child: dice(4, 6), Conditions: []eval.Condition{cp('>', 3), cp('<', 6)}, Keep: true}},
		{"4d6d1", &eval.KeepDropConditional{Child: dice(4, 6), Conditions: []eval.Condition{cp('=', 1)}}},
		{"4d6d1dh", &eval.KeepDropHighLow{
			Child: &eval.KeepDropConditional{Child: dice(4, 6), Conditions: []eval.Condition{cp('=', 1)}},
			High:  true,
			Count: 1,
		}},
		{"4d6>4", &eval.SuccessFailCounter{Child: dice(4, 6), Success: cp('>', 4)}},
		{"4d6=6f1", &eval.SuccessFailCounter{Child: dice(4, 6), Success: cp('=', 6), Failure: cpp('=', 1)}},
		{"4d6m", &eval.NumberMatcher{Child: dice(4, 6)}},
		{"4d6mt", &eval.NumberMatcher{Child: dice(4, 6), MatchCount: true}},
		{"4d6kh3>4", &eval.SuccessFailCounter{
			Child:   &eval.KeepDropHighLow{Child: dice(4, 6), High: true, Keep: true, Count: 3},
			Success: cp('>', 4),
		}},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.ProcessLeaf(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ProcessLeaf(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestModifiersApplyInReadingOrder(t *testing.T) {
	got, err := New().ProcessLeaf("6d51dh5!r<2k3!p=24!!>62")
	require.NoError(t, err)

	want := &eval.Explode{
		Mode:      eval.ExplodeCompounding,
		Condition: cpp('>', 62),
		Child: &eval.Explode{
			Mode:      eval.ExplodePenetrating,
			Condition: cpp('=', 24),
			Child: &eval.KeepDropConditional{
				Keep:       true,
				Conditions: []eval.Condition{cp('=', 3)},
				Child: &eval.Reroll{
					Conditions: []eval.Condition{cp('<', 2)},
					Child: &eval.Explode{
						Mode:  eval.ExplodeRegular,
						Child: &eval.KeepDropHighLow{Child: dice(6, 51), High: true, Count: 5},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("modifier chain mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessTree(t *testing.T) {
	attack := &eval.Bracket{Child: &eval.Math{Op: '+', Left: dice(1, 20), Right: eval.StaticNumber{Value: 5}}}

	tests := []struct {
		input string
		want  eval.Node
	}{
		{"{1d20+5, 1d20+5}kh", &eval.KeepDropHighLow{
			Child: &eval.NumberList{Entries: []eval.Node{attack, attack}},
			High:  true, Keep: true, Count: 1,
		}},
		{"{4d6}kh3", &eval.KeepDropHighLow{Child: &eval.Bracket{Child: dice(4, 6)}, High: true, Keep: true, Count: 3}},
		{"{2d6, 1d8}", &eval.NumberList{Entries: []eval.Node{&eval.Bracket{Child: dice(2, 6)}, &eval.Bracket{Child: dice(1, 8)}}}},
		{"{2d20+1d10}>7", &eval.SuccessFailCounter{
			Child:   &eval.Bracket{Child: &eval.Math{Op: '+', Left: dice(2, 20), Right: dice(1, 10)}},
			Success: cp('>', 7),
		}},
		{"{3d20+5}>10", &eval.SuccessFailCounter{
			Child: &eval.NumberList{Entries: []eval.Node{
				&eval.Bracket{Child: &eval.Math{Op: '+', Left: dice(3, 20), Right: eval.StaticNumber{Value: 5}}},
			}},
			Success: cp('>', 10),
		}},
		{"{4d6,3d6}>3f1", &eval.SuccessFailCounter{
			Child:   &eval.NumberList{Entries: []eval.Node{&eval.Bracket{Child: dice(4, 6)}, &eval.Bracket{Child: dice(3, 6)}}},
			Success: cp('>', 3),
			Failure: cpp('=', 1),
		}},
		{"floor(7/2)", &eval.Function{Name: eval.Floor, Child: &eval.Math{Op: '/', Left: eval.StaticNumber{Value: 7}, Right: eval.StaticNumber{Value: 2}}}},
		{"2^(1)", &eval.Math{Op: '^', Left: eval.StaticNumber{Value: 2}, Right: &eval.Bracket{Child: eval.StaticNumber{Value: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustProcess(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Process(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  diceerr.Kind
	}{
		{"4d0", diceerr.KindSemantic},
		{"4d-2", diceerr.KindSyntax},
		{"-1d6", diceerr.KindSemantic},
		{"4d", diceerr.KindSyntax},
		{"4d6x", diceerr.KindSyntax},
		{"4d6r", diceerr.KindSyntax},
		{"4d6>4>5", diceerr.KindSyntax},
		{"4d6kh3mq", diceerr.KindSyntax},
		{"2d[a]", diceerr.KindSyntax},
		{"2d[]", diceerr.KindSyntax},
		{"1.5d6", diceerr.KindSyntax},
		{"1.", diceerr.KindSyntax},
		{"abc", diceerr.KindSyntax},
		{"1+", diceerr.KindSyntax},
		{"()", diceerr.KindSyntax},
		{"{4d6}x", diceerr.KindSyntax},
		{"{4d6}kh3m", diceerr.KindSyntax},
		{"99999999999999999999", diceerr.KindSemantic},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			carved, err := parser.Carve(parser.Standardize(tt.input))
			if err == nil {
				_, err = p.Process(carved)
			}
			require.Error(t, err)
			assert.True(t, diceerr.IsKind(err, tt.kind), "got %v", err)
		})
	}
}
