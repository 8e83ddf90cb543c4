package token

var keywords = map[string]Kind{
	"func":   KwFunc,
	"if":     KwIf,
	"else":   KwElse,
	"let":    KwLet,
	"return": KwReturn,
	"while":  KwWhile,
	"for":    KwFor,
}

// LookupKeyword returns the Kind for an identifier spelling if it names
// one of Lotl's reserved words.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
