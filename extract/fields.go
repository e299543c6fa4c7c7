package extract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/oestevezr/mapstruct"
)

// campoAnnotation marks DAO fields that participate in mapping.
const campoAnnotation = "@Campo"

// javaLexer tokenizes just enough Java to recognize field declarations.
// Everything the extractor does not understand lands in Punct/Other and
// is skipped.
var javaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?:[^*]|\*[^/])*\*/`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Char", Pattern: `'(?:\\.|[^'\\])*'`},
	{Name: "Annotation", Pattern: `@[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_.]*`},
	{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$]*`},
	{Name: "Punct", Pattern: `[<>\[\](){};,.=+\-*/%!&|?:~^]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `.`},
})

var accessModifiers = []string{"private", "public", "protected"}

var fieldModifiers = []string{"final", "static", "transient", "volatile"}

// Fields extracts the field declarations of one class body. When
// annotatedOnly is set, only fields carrying @Campo are returned,
// mirroring the DAO-side extraction rule.
func Fields(source []byte, class string, annotatedOnly bool) ([]mapstruct.Field, error) {
	toks, err := tokenize(string(source))
	if err != nil {
		return nil, fmt.Errorf("tokenizing %s: %w", class, err)
	}

	symbols := javaLexer.Symbols()
	tIdent := symbols["Ident"]
	tAnnotation := symbols["Annotation"]
	tPunct := symbols["Punct"]

	var (
		fields      []mapstruct.Field
		annotations []string
	)

	for i := 0; i < len(toks); i++ {
		tok := toks[i]

		switch {
		case tok.Type == tAnnotation:
			annotations = append(annotations, tok.Value)
			continue

		case tok.Type == tPunct && (tok.Value == ";" || tok.Value == "{" || tok.Value == "}"):
			annotations = nil
			continue

		case tok.Type == tIdent && slices.Contains(accessModifiers, tok.Value):
			typ, name, end, ok := parseDeclaration(toks, i+1, symbols)
			if !ok {
				continue
			}

			if !annotatedOnly || slices.Contains(annotations, campoAnnotation) {
				fields = append(fields, mapstruct.Field{Name: name, Type: typ, Owner: class})
			}

			annotations = nil
			i = end
		}
	}

	return fields, nil
}

// parseDeclaration parses `[modifiers] type name ;` starting at i.
// Returns the end index of the terminating semicolon. Declarations with
// initializers or parameter lists (methods, constructors) do not match,
// same as the original extraction pattern.
func parseDeclaration(toks []lexer.Token, i int, symbols map[string]lexer.TokenType) (typ, name string, end int, ok bool) {
	tIdent := symbols["Ident"]
	tPunct := symbols["Punct"]

	for i < len(toks) && toks[i].Type == tIdent && slices.Contains(fieldModifiers, toks[i].Value) {
		i++
	}

	if i >= len(toks) || toks[i].Type != tIdent {
		return "", "", 0, false
	}

	var sb strings.Builder
	sb.WriteString(toks[i].Value)
	i++

	// Qualified names, generic arguments and array brackets extend the
	// type token by token.
	depth := 0
	for i < len(toks) {
		tok := toks[i]

		if tok.Type == tPunct {
			switch tok.Value {
			case ".":
				if i+1 >= len(toks) || toks[i+1].Type != tIdent {
					return "", "", 0, false
				}
				sb.WriteString(".")
				sb.WriteString(toks[i+1].Value)
				i += 2
				continue
			case "<":
				depth++
				sb.WriteString("<")
				i++
				continue
			case ">":
				if depth == 0 {
					return "", "", 0, false
				}
				depth--
				sb.WriteString(">")
				i++
				continue
			case ",":
				if depth == 0 {
					return "", "", 0, false
				}
				sb.WriteString(",")
				i++
				continue
			case "[":
				if i+1 < len(toks) && toks[i+1].Type == tPunct && toks[i+1].Value == "]" {
					sb.WriteString("[]")
					i += 2
					continue
				}
				return "", "", 0, false
			}
		}

		if tok.Type == tIdent && depth > 0 {
			sb.WriteString(tok.Value)
			i++
			continue
		}

		break
	}

	if depth != 0 || i >= len(toks) || toks[i].Type != tIdent {
		return "", "", 0, false
	}

	name = toks[i].Value
	i++

	if i >= len(toks) || toks[i].Type != tPunct || toks[i].Value != ";" {
		return "", "", 0, false
	}

	return sb.String(), name, i, true
}

// tokenize lexes source, eliding whitespace and comments.
func tokenize(source string) ([]lexer.Token, error) {
	lx, err := javaLexer.LexString("", source)
	if err != nil {
		return nil, err
	}

	symbols := javaLexer.Symbols()
	skip := map[lexer.TokenType]bool{
		symbols["Whitespace"]: true,
		symbols["Comment"]:    true,
	}

	var toks []lexer.Token

	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}

		if tok.EOF() {
			return toks, nil
		}

		if !skip[tok.Type] {
			toks = append(toks, tok)
		}
	}
}
