package glsl

import (
	"strings"
)

// predefined macros of an ES 1.00 implementation.
var predefined = map[string]string{
	"GL_ES":                      "1",
	"__VERSION__":                "100",
	"GL_FRAGMENT_PRECISION_HIGH": "1",
}

type condFrame struct {
	active   bool // lines in this branch are kept
	taken    bool // some branch of this #if already matched
	outerOff bool // enclosing block is inactive
}

type preprocessor struct {
	defines map[string][]token
	conds   []condFrame
}

// tokenize preprocesses src and returns its tokens, terminated by tokEOF.
// Object-like #define, #undef and #if/#ifdef/#ifndef/#elif/#else/#endif are
// honoured; #version, #extension, #pragma and #line are accepted and
// ignored.
func tokenize(src string) ([]token, error) {
	pp := &preprocessor{defines: make(map[string][]token)}
	for name, body := range predefined {
		toks, _ := scanLine(body, 0)
		pp.defines[name] = toks
	}
	lines := strings.Split(stripComments(src), "\n")
	var out []token
	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := lines[i]
		for strings.HasSuffix(line, "\\") && i+1 < len(lines) {
			i++
			line = line[:len(line)-1] + " " + lines[i]
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			if err := pp.directive(strings.TrimSpace(trimmed[1:]), lineNo); err != nil {
				return nil, err
			}
			continue
		}
		if !pp.active() {
			continue
		}
		toks, err := scanLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		out = append(out, pp.expand(toks, nil)...)
	}
	if len(pp.conds) > 0 {
		return nil, errorf(Pos{Line: len(lines)}, ErrSyntax, "unterminated #if")
	}
	out = append(out, token{kind: tokEOF, pos: Pos{Line: len(lines) + 1, Col: 1}})
	return out, nil
}

func (pp *preprocessor) active() bool {
	return len(pp.conds) == 0 || pp.conds[len(pp.conds)-1].active
}

func (pp *preprocessor) expand(toks []token, busy map[string]bool) []token {
	var out []token
	for _, t := range toks {
		body, ok := pp.defines[t.text]
		if t.kind != tokIdent || !ok || busy[t.text] {
			out = append(out, t)
			continue
		}
		inner := make(map[string]bool, len(busy)+1)
		for k := range busy {
			inner[k] = true
		}
		inner[t.text] = true
		for _, bt := range pp.expand(body, inner) {
			bt.pos = t.pos
			out = append(out, bt)
		}
	}
	return out
}

func (pp *preprocessor) directive(text string, lineNo int) error {
	pos := Pos{Line: lineNo, Col: 1}
	name, rest, _ := strings.Cut(text, " ")
	if i := strings.IndexByte(name, '\t'); i >= 0 {
		name, rest = name[:i], name[i+1:]+" "+rest
	}
	rest = strings.TrimSpace(rest)

	switch name {
	case "ifdef", "ifndef", "if":
		frame := condFrame{outerOff: !pp.active()}
		if !frame.outerOff {
			cond, err := pp.condition(name, rest, lineNo)
			if err != nil {
				return err
			}
			frame.active, frame.taken = cond, cond
		}
		pp.conds = append(pp.conds, frame)
	case "elif":
		if len(pp.conds) == 0 {
			return errorf(pos, ErrSyntax, "#elif without #if")
		}
		f := &pp.conds[len(pp.conds)-1]
		f.active = false
		if !f.outerOff && !f.taken {
			cond, err := pp.condition("if", rest, lineNo)
			if err != nil {
				return err
			}
			f.active, f.taken = cond, cond
		}
	case "else":
		if len(pp.conds) == 0 {
			return errorf(pos, ErrSyntax, "#else without #if")
		}
		f := &pp.conds[len(pp.conds)-1]
		f.active = !f.outerOff && !f.taken
		f.taken = true
	case "endif":
		if len(pp.conds) == 0 {
			return errorf(pos, ErrSyntax, "#endif without #if")
		}
		pp.conds = pp.conds[:len(pp.conds)-1]
	case "define":
		if !pp.active() {
			return nil
		}
		toks, err := scanLine(rest, lineNo)
		if err != nil {
			return err
		}
		if len(toks) == 0 || toks[0].kind != tokIdent {
			return errorf(pos, ErrSyntax, "#define needs a name")
		}
		if len(toks) > 1 && toks[1].text == "(" && toks[1].pos.Col == toks[0].pos.Col+len(toks[0].text) {
			return errorf(pos, ErrUnsupported, "function-like macro %s", toks[0].text)
		}
		pp.defines[toks[0].text] = toks[1:]
	case "undef":
		if pp.active() {
			delete(pp.defines, rest)
		}
	case "error":
		if pp.active() {
			return errorf(pos, ErrSyntax, "#error %s", rest)
		}
	case "", "version", "extension", "pragma", "line":
	default:
		if pp.active() {
			return errorf(pos, ErrSyntax, "unknown directive #%s", name)
		}
	}
	return nil
}

func (pp *preprocessor) condition(kind, rest string, lineNo int) (bool, error) {
	switch kind {
	case "ifdef":
		_, ok := pp.defines[rest]
		return ok, nil
	case "ifndef":
		_, ok := pp.defines[rest]
		return !ok, nil
	}
	toks, err := scanLine(rest, lineNo)
	if err != nil {
		return false, err
	}
	// Resolve defined(X) before macro expansion.
	var resolved []token
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.kind != tokIdent || t.text != "defined" {
			resolved = append(resolved, t)
			continue
		}
		j := i + 1
		paren := j < len(toks) && toks[j].text == "("
		if paren {
			j++
		}
		if j >= len(toks) || toks[j].kind != tokIdent {
			return false, errorf(t.pos, ErrSyntax, "defined needs a name")
		}
		_, ok := pp.defines[toks[j].text]
		resolved = append(resolved, token{kind: tokInt, num: boolf(ok), pos: t.pos})
		if paren {
			j++
			if j >= len(toks) || toks[j].text != ")" {
				return false, errorf(t.pos, ErrSyntax, "missing ) after defined")
			}
		}
		i = j
	}
	ev := &condEval{toks: pp.expand(resolved, nil)}
	v, err := ev.binary(0)
	if err != nil {
		return false, err
	}
	if ev.i != len(ev.toks) {
		return false, errorf(Pos{Line: lineNo, Col: 1}, ErrSyntax, "trailing tokens in #if")
	}
	return v != 0, nil
}

// condEval evaluates a #if integer expression.
type condEval struct {
	toks []token
	i    int
}

var condPrec = map[string]int{
	"||": 1, "&&": 2,
	"==": 3, "!=": 3,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

func (e *condEval) binary(minPrec int) (int64, error) {
	x, err := e.unary()
	if err != nil {
		return 0, err
	}
	for e.i < len(e.toks) {
		op := e.toks[e.i].text
		prec, ok := condPrec[op]
		if !ok || prec <= minPrec {
			break
		}
		e.i++
		y, err := e.binary(prec)
		if err != nil {
			return 0, err
		}
		x = applyCondOp(op, x, y)
	}
	return x, nil
}

func applyCondOp(op string, x, y int64) int64 {
	b := func(v bool) int64 {
		if v {
			return 1
		}
		return 0
	}
	switch op {
	case "||":
		return b(x != 0 || y != 0)
	case "&&":
		return b(x != 0 && y != 0)
	case "==":
		return b(x == y)
	case "!=":
		return b(x != y)
	case "<":
		return b(x < y)
	case ">":
		return b(x > y)
	case "<=":
		return b(x <= y)
	case ">=":
		return b(x >= y)
	case "+":
		return x + y
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		if y == 0 {
			return 0
		}
		return x / y
	case "%":
		if y == 0 {
			return 0
		}
		return x % y
	}
	return 0
}

func (e *condEval) unary() (int64, error) {
	if e.i >= len(e.toks) {
		return 0, errorf(Pos{}, ErrSyntax, "incomplete #if expression")
	}
	t := e.toks[e.i]
	e.i++
	switch {
	case t.text == "!":
		v, err := e.unary()
		if v == 0 {
			return 1, err
		}
		return 0, err
	case t.text == "-":
		v, err := e.unary()
		return -v, err
	case t.text == "(":
		v, err := e.binary(0)
		if err != nil {
			return 0, err
		}
		if e.i >= len(e.toks) || e.toks[e.i].text != ")" {
			return 0, errorf(t.pos, ErrSyntax, "missing ) in #if")
		}
		e.i++
		return v, nil
	case t.kind == tokInt:
		return int64(t.num), nil
	case t.kind == tokIdent:
		return 0, nil
	}
	return 0, errorf(t.pos, ErrSyntax, "unexpected %q in #if", t.text)
}
