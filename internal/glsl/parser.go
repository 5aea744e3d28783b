package glsl

var precisionWords = map[string]bool{"lowp": true, "mediump": true, "highp": true}

var binaryPrec = map[string]int{
	"||": 1,
	"^^": 2,
	"&&": 3,
	"==": 4, "!=": 4,
	"<": 5, ">": 5, "<=": 5, ">=": 5,
	"+": 6, "-": 6,
	"*": 7, "/": 7, "%": 7,
}

var assignOps = map[string]bool{"=": true, "+=": true, "-=": true, "*=": true, "/=": true}

type parser struct {
	toks []token
	i    int
}

// bailout carries a parse error out of the recursive descent.
type bailout struct{ err *Error }

// Parse preprocesses and parses src.
func Parse(src string) (file *File, err error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			file, err = nil, b.err
		}
	}()
	return p.file(), nil
}

func (p *parser) fail(pos Pos, kind error, format string, args ...any) {
	panic(bailout{errorf(pos, kind, format, args...)})
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) peekAt(n int) token {
	if p.i+n < len(p.toks) {
		return p.toks[p.i+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) is(text string) bool {
	t := p.peek()
	return (t.kind == tokOp || t.kind == tokIdent) && t.text == text
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) token {
	t := p.peek()
	if !p.is(text) {
		p.fail(t.pos, ErrSyntax, "expected %q, found %q", text, describe(t))
	}
	return p.next()
}

func (p *parser) ident() token {
	t := p.peek()
	if t.kind != tokIdent {
		p.fail(t.pos, ErrSyntax, "expected identifier, found %q", describe(t))
	}
	return p.next()
}

func describe(t token) string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return t.text
}

func (p *parser) isTypeAt(n int) bool {
	t := p.peekAt(n)
	if t.kind != tokIdent {
		return false
	}
	_, ok := TypeByName(t.text)
	return ok
}

func (p *parser) typeName() Type {
	t := p.ident()
	typ, ok := TypeByName(t.text)
	if !ok {
		if t.text == "struct" {
			p.fail(t.pos, ErrUnsupported, "struct types")
		}
		p.fail(t.pos, ErrSyntax, "expected type, found %q", t.text)
	}
	return typ
}

func (p *parser) skipPrecision() {
	for precisionWords[p.peek().text] && p.peek().kind == tokIdent {
		p.next()
	}
}

func (p *parser) file() *File {
	f := &File{}
	for p.peek().kind != tokEOF {
		if p.accept(";") {
			continue
		}
		if p.accept("precision") {
			p.skipPrecision()
			p.typeName()
			p.expect(";")
			continue
		}
		start := p.peek().pos
		p.accept("invariant")
		qual := p.qualifier()
		p.skipPrecision()
		typ := p.typeName()
		name := p.ident()
		if p.is("(") {
			if qual != QualNone {
				p.fail(start, ErrSyntax, "qualifier on function %s", name.text)
			}
			fn := p.function(start, typ, name)
			f.Funcs = append(f.Funcs, fn)
			f.Order = append(f.Order, fn)
			continue
		}
		d := p.declarators(start, qual, typ, name)
		f.Vars = append(f.Vars, d)
		f.Order = append(f.Order, d)
	}
	return f
}

func (p *parser) qualifier() Qualifier {
	switch {
	case p.accept("const"):
		return QualConst
	case p.accept("uniform"):
		return QualUniform
	case p.accept("attribute"):
		return QualAttribute
	case p.accept("varying"):
		return QualVarying
	}
	return QualNone
}

func (p *parser) declarators(start Pos, qual Qualifier, typ Type, name token) *VarDecl {
	d := &VarDecl{Pos: start, Qual: qual, Type: typ}
	for {
		v := Declarator{Pos: name.pos, Name: name.text}
		if p.accept("[") {
			v.ArrayLen = p.expression()
			p.expect("]")
		}
		if p.accept("=") {
			v.Init = p.assignment()
		}
		d.Vars = append(d.Vars, v)
		if !p.accept(",") {
			break
		}
		name = p.ident()
	}
	p.expect(";")
	return d
}

func (p *parser) function(start Pos, ret Type, name token) *FuncDecl {
	fn := &FuncDecl{Pos: start, Ret: ret, Name: name.text}
	p.expect("(")
	if p.is("void") && p.peekAt(1).text == ")" {
		p.next()
	}
	for !p.is(")") {
		if len(fn.Params) > 0 {
			p.expect(",")
		}
		fn.Params = append(fn.Params, p.param())
	}
	p.expect(")")
	if p.accept(";") {
		return fn
	}
	fn.Body = p.block()
	return fn
}

func (p *parser) param() Param {
	prm := Param{Pos: p.peek().pos}
	prm.Const = p.accept("const")
	switch {
	case p.accept("in"):
	case p.accept("out"):
		prm.Dir = DirOut
	case p.accept("inout"):
		prm.Dir = DirInOut
	}
	p.skipPrecision()
	prm.Type = p.typeName()
	if p.peek().kind == tokIdent {
		prm.Name = p.next().text
	}
	if p.accept("[") {
		prm.ArrayLen = p.expression()
		p.expect("]")
	}
	return prm
}

func (p *parser) block() *Block {
	b := &Block{Pos: p.expect("{").pos}
	for !p.is("}") {
		if p.peek().kind == tokEOF {
			p.fail(p.peek().pos, ErrSyntax, "unexpected end of input in block")
		}
		if s := p.statement(); s != nil {
			b.List = append(b.List, s)
		}
	}
	p.next()
	return b
}

// isDecl reports whether a declaration starts at the current token.
func (p *parser) isDecl() bool {
	t := p.peek()
	if t.kind != tokIdent {
		return false
	}
	if t.text == "const" || precisionWords[t.text] {
		return true
	}
	return p.isTypeAt(0) && p.peekAt(1).kind == tokIdent
}

func (p *parser) localDecl() *VarDecl {
	start := p.peek().pos
	qual := QualNone
	if p.accept("const") {
		qual = QualConst
	}
	p.skipPrecision()
	typ := p.typeName()
	return p.declarators(start, qual, typ, p.ident())
}

func (p *parser) statement() Stmt {
	t := p.peek()
	switch {
	case p.is("{"):
		return p.block()
	case p.accept(";"):
		return nil
	case p.accept("precision"):
		p.skipPrecision()
		p.typeName()
		p.expect(";")
		return nil
	case p.accept("if"):
		p.expect("(")
		s := &If{Pos: t.pos, Cond: p.expression()}
		p.expect(")")
		s.Then = p.statement()
		if p.accept("else") {
			s.Else = p.statement()
		}
		return s
	case p.accept("for"):
		p.expect("(")
		s := &For{Pos: t.pos}
		switch {
		case p.accept(";"):
		case p.isDecl():
			s.Init = &DeclStmt{Decl: p.localDecl()}
		default:
			s.Init = &ExprStmt{Pos: p.peek().pos, X: p.expression()}
			p.expect(";")
		}
		if !p.is(";") {
			s.Cond = p.expression()
		}
		p.expect(";")
		if !p.is(")") {
			s.Post = p.expression()
		}
		p.expect(")")
		s.Body = p.statement()
		return s
	case p.accept("while"):
		p.expect("(")
		s := &While{Pos: t.pos, Cond: p.expression()}
		p.expect(")")
		s.Body = p.statement()
		return s
	case p.accept("do"):
		s := &DoWhile{Pos: t.pos, Body: p.statement()}
		p.expect("while")
		p.expect("(")
		s.Cond = p.expression()
		p.expect(")")
		p.expect(";")
		return s
	case p.accept("return"):
		s := &Return{Pos: t.pos}
		if !p.is(";") {
			s.X = p.expression()
		}
		p.expect(";")
		return s
	case p.accept("break"):
		p.expect(";")
		return &Break{Pos: t.pos}
	case p.accept("continue"):
		p.expect(";")
		return &Continue{Pos: t.pos}
	case p.accept("discard"):
		p.expect(";")
		return &Discard{Pos: t.pos}
	case p.isDecl():
		return &DeclStmt{Decl: p.localDecl()}
	}
	s := &ExprStmt{Pos: t.pos, X: p.expression()}
	p.expect(";")
	return s
}

func (p *parser) expression() Expr {
	x := p.assignment()
	if !p.is(",") {
		return x
	}
	seq := &Sequence{Pos: x.exprPos(), List: []Expr{x}}
	for p.accept(",") {
		seq.List = append(seq.List, p.assignment())
	}
	return seq
}

func (p *parser) assignment() Expr {
	x := p.ternary()
	t := p.peek()
	if t.kind == tokOp && assignOps[t.text] {
		p.next()
		return &Assign{Pos: t.pos, Op: t.text, L: x, R: p.assignment()}
	}
	if t.kind == tokOp && (t.text == "%=" || t.text == "<<=" || t.text == ">>=") {
		p.fail(t.pos, ErrUnsupported, "reserved operator %s", t.text)
	}
	return x
}

func (p *parser) ternary() Expr {
	cond := p.binary(0)
	t := p.peek()
	if !p.accept("?") {
		return cond
	}
	then := p.expression()
	p.expect(":")
	return &Ternary{Pos: t.pos, Cond: cond, Then: then, Else: p.assignment()}
}

func (p *parser) binary(minPrec int) Expr {
	x := p.unary()
	for {
		t := p.peek()
		prec, ok := binaryPrec[t.text]
		if t.kind != tokOp || !ok || prec <= minPrec {
			if t.kind == tokOp && (t.text == "&" || t.text == "|" || t.text == "^" || t.text == "<<" || t.text == ">>") {
				p.fail(t.pos, ErrUnsupported, "reserved operator %s", t.text)
			}
			return x
		}
		p.next()
		x = &Binary{Pos: t.pos, Op: t.text, X: x, Y: p.binary(prec)}
	}
}

func (p *parser) unary() Expr {
	t := p.peek()
	if t.kind == tokOp {
		switch t.text {
		case "+", "-", "!", "++", "--":
			p.next()
			return &Unary{Pos: t.pos, Op: t.text, X: p.unary()}
		case "~":
			p.fail(t.pos, ErrUnsupported, "reserved operator ~")
		}
	}
	return p.postfix(p.primary())
}

func (p *parser) postfix(x Expr) Expr {
	for {
		t := p.peek()
		switch {
		case p.accept("["):
			x = &Index{Pos: t.pos, X: x, Index: p.expression()}
			p.expect("]")
		case p.accept("."):
			x = &Field{Pos: t.pos, X: x, Name: p.ident().text}
		case t.kind == tokOp && (t.text == "++" || t.text == "--"):
			p.next()
			x = &Unary{Pos: t.pos, Op: t.text, X: x, Postfix: true}
		default:
			return x
		}
	}
}

func (p *parser) primary() Expr {
	t := p.next()
	switch t.kind {
	case tokInt:
		return &Literal{Pos: t.pos, Type: Int, Value: t.num}
	case tokFloat:
		return &Literal{Pos: t.pos, Type: Float, Value: t.num}
	case tokIdent:
		switch t.text {
		case "true":
			return &Literal{Pos: t.pos, Type: Bool, Value: 1}
		case "false":
			return &Literal{Pos: t.pos, Type: Bool, Value: 0}
		}
		if p.is("(") {
			return p.call(t)
		}
		return &Ident{Pos: t.pos, Name: t.text}
	case tokOp:
		if t.text == "(" {
			x := p.expression()
			p.expect(")")
			return x
		}
	}
	p.fail(t.pos, ErrSyntax, "unexpected %q", describe(t))
	return nil
}

func (p *parser) call(name token) Expr {
	c := &Call{Pos: name.pos, Name: name.text}
	p.expect("(")
	if p.is("void") && p.peekAt(1).text == ")" {
		p.next()
	}
	for !p.is(")") {
		if len(c.Args) > 0 {
			p.expect(",")
		}
		c.Args = append(c.Args, p.assignment())
	}
	p.next()
	return c
}
