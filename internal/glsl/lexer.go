package glsl

import (
	"strconv"
	"strings"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokOp
)

type token struct {
	kind tokenKind
	text string
	num  float32
	pos  Pos
}

// operators, longest first.
var operators = []string{
	"<<=", ">>=",
	"++", "--", "<=", ">=", "==", "!=", "&&", "||", "^^",
	"+=", "-=", "*=", "/=", "%=", "<<", ">>",
	"+", "-", "*", "/", "%", "<", ">", "=", "!", "~", "&", "|", "^",
	"?", ":", ";", ",", ".", "(", ")", "[", "]", "{", "}",
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// stripComments blanks out // and /* */ comments, keeping newlines so
// positions stay valid.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				b.WriteByte(' ')
				i++
			}
		case strings.HasPrefix(src[i:], "/*"):
			b.WriteString("  ")
			i += 2
			for i < len(src) && !strings.HasPrefix(src[i:], "*/") {
				if src[i] == '\n' {
					b.WriteByte('\n')
				} else {
					b.WriteByte(' ')
				}
				i++
			}
			if i < len(src) {
				b.WriteString("  ")
				i += 2
			}
		default:
			b.WriteByte(src[i])
			i++
		}
	}
	return b.String()
}

// scanLine tokenizes one line of comment-free source.
func scanLine(line string, lineNo int) ([]token, error) {
	var toks []token
	for i := 0; i < len(line); {
		c := line[i]
		pos := Pos{Line: lineNo, Col: i + 1}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(line) && (isIdentStart(line[j]) || isDigit(line[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: line[i:j], pos: pos})
			i = j
		case isDigit(c) || (c == '.' && i+1 < len(line) && isDigit(line[i+1])):
			tok, n, err := scanNumber(line[i:], pos)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += n
		default:
			op := ""
			for _, o := range operators {
				if strings.HasPrefix(line[i:], o) {
					op = o
					break
				}
			}
			if op == "" {
				return nil, errorf(pos, ErrSyntax, "unexpected character %q", c)
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: pos})
			i += len(op)
		}
	}
	return toks, nil
}

func scanNumber(s string, pos Pos) (token, int, error) {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		j := 2
		for j < len(s) && strings.IndexByte("0123456789abcdefABCDEF", s[j]) >= 0 {
			j++
		}
		v, err := strconv.ParseInt(s[2:j], 16, 64)
		if err != nil {
			return token{}, 0, errorf(pos, ErrSyntax, "bad hex literal %q", s[:j])
		}
		return token{kind: tokInt, text: s[:j], num: float32(v), pos: pos}, j, nil
	}
	j := 0
	isFloat := false
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j < len(s) && s[j] == '.' {
		isFloat = true
		j++
		for j < len(s) && isDigit(s[j]) {
			j++
		}
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && isDigit(s[k]) {
			isFloat = true
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			j = k
		}
	}
	text := s[:j]
	if j < len(s) && (s[j] == 'f' || s[j] == 'F') && isFloat {
		j++
	}
	if isFloat {
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return token{}, 0, errorf(pos, ErrSyntax, "bad float literal %q", text)
		}
		return token{kind: tokFloat, text: text, num: float32(v), pos: pos}, j, nil
	}
	base := 10
	if len(text) > 1 && text[0] == '0' {
		base = 8
	}
	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return token{}, 0, errorf(pos, ErrSyntax, "bad integer literal %q", text)
	}
	return token{kind: tokInt, text: text, num: float32(v), pos: pos}, j, nil
}
