package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sansecio/dicego/ast"
	"github.com/sansecio/dicego/diceerr"
)

func mustCarve(t *testing.T, input string) ast.Node {
	t.Helper()
	n, err := Carve(input)
	if err != nil {
		t.Fatalf("failed to carve %q: %v", input, err)
	}
	return n
}

func lf(s string) ast.Leaf { return ast.Leaf{Text: s} }

func mathNode(op byte, l, r ast.Node) *ast.Math { return &ast.Math{Op: op, Left: l, Right: r} }

func group(n ast.Node) *ast.Group { return &ast.Group{Elements: []ast.Node{n}} }

func TestCarve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Node
	}{
		{"leaf", "4d6kh3", lf("4d6kh3")},
		{"precedence", "1+2*3", mathNode('+', lf("1"), mathNode('*', lf("2"), lf("3")))},
		{"left fold", "10-4-3", mathNode('-', mathNode('-', lf("10"), lf("4")), lf("3"))},
		{"mixed product", "8/2%3", mathNode('%', mathNode('/', lf("8"), lf("2")), lf("3"))},
		{"right assoc exponent", "2^3^2", mathNode('^', lf("2"), mathNode('^', lf("3"), lf("2")))},
		{"exponent binds tightest", "2*3^2", mathNode('*', lf("2"), mathNode('^', lf("3"), lf("2")))},
		{"leading sign", "-2+1", mathNode('+', lf("-2"), lf("1"))},
		{"sign after operator", "3*-2", mathNode('*', lf("3"), lf("-2"))},
		{"sign after compare", "4d6>-1", lf("4d6>-1")},
		{"group then operator", "(1+3)*2", mathNode('*', group(mathNode('+', lf("1"), lf("3"))), lf("2"))},
		{"minus after group", "(2)-1", mathNode('-', group(lf("2")), lf("1"))},
		{"operator then group", "2*(3)+1", mathNode('+', mathNode('*', lf("2"), group(lf("3"))), lf("1"))},
		{"product after group", "1+(2)*3", mathNode('+', lf("1"), mathNode('*', group(lf("2")), lf("3")))},
		{"group inside product", "1+2*(3)", mathNode('+', lf("1"), mathNode('*', lf("2"), group(lf("3"))))},
		{"nested groups", "(1+3)*2+((7-3)/2)", mathNode('+',
			mathNode('*', group(mathNode('+', lf("1"), lf("3"))), lf("2")),
			group(mathNode('/', group(mathNode('-', lf("7"), lf("3"))), lf("2"))),
		)},
		{"group exponent", "(2)^3^2", mathNode('^', group(lf("2")), mathNode('^', lf("3"), lf("2")))},
		{"function", "floor(7/2)", &ast.Group{Function: "floor", Elements: []ast.Node{mathNode('/', lf("7"), lf("2"))}}},
		{"function after operator", "1+abs(-2)", mathNode('+', lf("1"), &ast.Group{Function: "abs", Elements: []ast.Node{lf("-2")}})},
		{"list with suffix", "{1d20+5,1d20+5}kh", &ast.Group{
			IsList: true,
			Suffix: "kh",
			Elements: []ast.Node{
				group(mathNode('+', lf("1d20"), lf("5"))),
				group(mathNode('+', lf("1d20"), lf("5"))),
			},
		}},
		{"empty entries dropped", "{1,,2,}", &ast.Group{IsList: true, Elements: []ast.Node{group(lf("1")), group(lf("2"))}}},
		{"suffix stops at minus", "{4d6}kh-2", mathNode('-', &ast.Group{IsList: true, Suffix: "kh", Elements: []ast.Node{group(lf("4d6"))}}, lf("2"))},
		{"suffix keeps signed compare", "{2d6}>-1", &ast.Group{IsList: true, Suffix: ">-1", Elements: []ast.Node{group(lf("2d6"))}}},
		{"custom faces are opaque", "2d[-1,0,1]+1", mathNode('+', lf("2d[-1,0,1]"), lf("1"))},
		{"empty slot kept", "1+", mathNode('+', lf("1"), nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCarve(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Carve(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestCarveEmpty(t *testing.T) {
	if n := mustCarve(t, ""); n != nil {
		t.Errorf("expected nil node, got %#v", n)
	}
}

func TestCarveErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed bracket", "(1+2"},
		{"stray closer", "1+2)"},
		{"unclosed list", "{1,2"},
		{"comma in bracket", "(1,2)"},
		{"stray comma", "1,2"},
		{"brace closes bracket", "(1}"},
		{"missing operator", "2(3)"},
		{"function on list", "floor{1,2}"},
		{"unclosed faces", "2d[1,2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Carve(tt.input)
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			if !diceerr.IsKind(err, diceerr.KindSyntax) {
				t.Errorf("expected syntax error, got %v", err)
			}
		})
	}
}

func TestCarveErrorPosition(t *testing.T) {
	_, err := Carve("1+2)")
	var e *diceerr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *diceerr.Error, got %T", err)
	}
	if e.Pos != 3 {
		t.Errorf("expected position 3, got %d", e.Pos)
	}
}
