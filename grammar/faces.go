package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Grammar structs for custom die faces, e.g. the "[-1,0,1]" in "4d[-1,0,1]".

type facesGrammar struct {
	Faces []int `parser:"'[' @Int ( ',' @Int )* ']'"`
}

func newFacesParser() *participle.Parser[facesGrammar] {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `-?[0-9]+`},
		{Name: "Punct", Pattern: `[\[\],]`},
	})
	return participle.MustBuild[facesGrammar](participle.Lexer(lex))
}
