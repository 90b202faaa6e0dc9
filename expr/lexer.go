package expr

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokLParen
	tokRParen
	tokComma
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokPower
	tokEq
	tokNe
	tokLe
	tokGe
	tokLt
	tokGt
	tokAnd
	tokOr
	tokNot
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// blockedIdents are names that signal an attempt to reach host
// capabilities. The grammar cannot express attribute access or calls to
// anything outside the fixed function table, so these would fail anyway;
// matching them explicitly lets the failure be classified and logged as a
// security rejection rather than a plain unknown identifier.
var blockedIdents = map[string]bool{
	"import": true, "exec": true, "eval": true, "compile": true,
	"open": true, "file": true, "os": true, "sys": true,
	"subprocess": true, "globals": true, "locals": true,
	"getattr": true, "setattr": true, "delattr": true,
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			i++
		case ch >= '0' && ch <= '9' || ch == '.' && i+1 < len(src) && isDigit(src[i+1]):
			start := i
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			lit := src[start:i]
			n, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q at %d", ErrSyntax, lit, start)
			}
			toks = append(toks, token{kind: tokNumber, text: lit, num: n, pos: start})
		case isIdentStart(ch):
			start := i
			for i < len(src) && isIdentByte(src[i]) {
				i++
			}
			name := src[start:i]
			switch strings.ToLower(name) {
			case "and":
				toks = append(toks, token{kind: tokAnd, text: name, pos: start})
			case "or":
				toks = append(toks, token{kind: tokOr, text: name, pos: start})
			case "not":
				toks = append(toks, token{kind: tokNot, text: name, pos: start})
			default:
				if strings.Contains(name, "__") || blockedIdents[strings.ToLower(name)] {
					return nil, fmt.Errorf("%w: identifier %q", ErrSecurity, name)
				}
				toks = append(toks, token{kind: tokIdent, text: name, pos: start})
			}
		case ch == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case ch == ',':
			toks = append(toks, token{kind: tokComma, pos: i})
			i++
		case ch == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case ch == '-':
			toks = append(toks, token{kind: tokMinus, pos: i})
			i++
		case ch == '*':
			if i+1 < len(src) && src[i+1] == '*' {
				toks = append(toks, token{kind: tokPower, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, pos: i})
				i++
			}
		case ch == '/':
			toks = append(toks, token{kind: tokSlash, pos: i})
			i++
		case ch == '%':
			toks = append(toks, token{kind: tokPercent, pos: i})
			i++
		case ch == '=':
			if i+1 < len(src) && src[i+1] == '=' {
				toks = append(toks, token{kind: tokEq, pos: i})
				i += 2
			} else {
				return nil, fmt.Errorf("%w: single '=' at %d", ErrSyntax, i)
			}
		case ch == '!':
			if i+1 < len(src) && src[i+1] == '=' {
				toks = append(toks, token{kind: tokNe, pos: i})
				i += 2
			} else {
				return nil, fmt.Errorf("%w: single '!' at %d", ErrSyntax, i)
			}
		case ch == '<':
			if i+1 < len(src) && src[i+1] == '=' {
				toks = append(toks, token{kind: tokLe, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokLt, pos: i})
				i++
			}
		case ch == '>':
			if i+1 < len(src) && src[i+1] == '=' {
				toks = append(toks, token{kind: tokGe, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokGt, pos: i})
				i++
			}
		case ch == '.':
			// Attribute access has no place in the grammar.
			return nil, fmt.Errorf("%w: attribute access at %d", ErrSecurity, i)
		default:
			return nil, fmt.Errorf("%w: unexpected byte %q at %d", ErrSyntax, string(ch), i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isIdentByte(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
