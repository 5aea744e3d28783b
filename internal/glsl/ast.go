package glsl

// Expr is an expression node.
type Expr interface{ exprPos() Pos }

// Stmt is a statement node.
type Stmt interface{ stmtPos() Pos }

type (
	Ident struct {
		Pos  Pos
		Name string
	}
	Literal struct {
		Pos   Pos
		Type  Type
		Value float32
	}
	Unary struct {
		Pos     Pos
		Op      string
		X       Expr
		Postfix bool
	}
	Binary struct {
		Pos  Pos
		Op   string
		X, Y Expr
	}
	Assign struct {
		Pos  Pos
		Op   string
		L, R Expr
	}
	Ternary struct {
		Pos              Pos
		Cond, Then, Else Expr
	}
	// Call is a function call or a constructor when Name is a type name.
	Call struct {
		Pos  Pos
		Name string
		Args []Expr
	}
	Field struct {
		Pos  Pos
		X    Expr
		Name string
	}
	Index struct {
		Pos   Pos
		X     Expr
		Index Expr
	}
	Sequence struct {
		Pos  Pos
		List []Expr
	}
)

func (e *Ident) exprPos() Pos    { return e.Pos }
func (e *Literal) exprPos() Pos  { return e.Pos }
func (e *Unary) exprPos() Pos    { return e.Pos }
func (e *Binary) exprPos() Pos   { return e.Pos }
func (e *Assign) exprPos() Pos   { return e.Pos }
func (e *Ternary) exprPos() Pos  { return e.Pos }
func (e *Call) exprPos() Pos     { return e.Pos }
func (e *Field) exprPos() Pos    { return e.Pos }
func (e *Index) exprPos() Pos    { return e.Pos }
func (e *Sequence) exprPos() Pos { return e.Pos }

// Qualifier is a storage qualifier.
type Qualifier uint8

// Storage qualifiers.
const (
	QualNone Qualifier = iota
	QualConst
	QualUniform
	QualAttribute
	QualVarying
)

func (q Qualifier) String() string {
	switch q {
	case QualConst:
		return "const"
	case QualUniform:
		return "uniform"
	case QualAttribute:
		return "attribute"
	case QualVarying:
		return "varying"
	}
	return ""
}

// Declarator is one name in a variable declaration.
type Declarator struct {
	Pos      Pos
	Name     string
	ArrayLen Expr
	Init     Expr
}

// VarDecl declares one or more variables of a type.
type VarDecl struct {
	Pos  Pos
	Qual Qualifier
	Type Type
	Vars []Declarator
}

// ParamDir is a parameter direction.
type ParamDir uint8

// Parameter directions.
const (
	DirIn ParamDir = iota
	DirOut
	DirInOut
)

// Param is a function parameter.
type Param struct {
	Pos      Pos
	Name     string
	Type     Type
	Dir      ParamDir
	Const    bool
	ArrayLen Expr
}

// FuncDecl is a function prototype (Body nil) or definition.
type FuncDecl struct {
	Pos    Pos
	Ret    Type
	Name   string
	Params []Param
	Body   *Block
}

// File is a parsed translation unit.
type File struct {
	Vars  []*VarDecl
	Funcs []*FuncDecl
	// Order keeps globals and functions in source order.
	Order []any
}

type (
	Block struct {
		Pos  Pos
		List []Stmt
	}
	DeclStmt struct {
		Decl *VarDecl
	}
	ExprStmt struct {
		Pos Pos
		X   Expr
	}
	If struct {
		Pos        Pos
		Cond       Expr
		Then, Else Stmt
	}
	For struct {
		Pos  Pos
		Init Stmt
		Cond Expr
		Post Expr
		Body Stmt
	}
	While struct {
		Pos  Pos
		Cond Expr
		Body Stmt
	}
	DoWhile struct {
		Pos  Pos
		Body Stmt
		Cond Expr
	}
	Return struct {
		Pos Pos
		X   Expr
	}
	Break    struct{ Pos Pos }
	Continue struct{ Pos Pos }
	Discard  struct{ Pos Pos }
)

func (s *Block) stmtPos() Pos    { return s.Pos }
func (s *DeclStmt) stmtPos() Pos { return s.Decl.Pos }
func (s *ExprStmt) stmtPos() Pos { return s.Pos }
func (s *If) stmtPos() Pos       { return s.Pos }
func (s *For) stmtPos() Pos      { return s.Pos }
func (s *While) stmtPos() Pos    { return s.Pos }
func (s *DoWhile) stmtPos() Pos  { return s.Pos }
func (s *Return) stmtPos() Pos   { return s.Pos }
func (s *Break) stmtPos() Pos    { return s.Pos }
func (s *Continue) stmtPos() Pos { return s.Pos }
func (s *Discard) stmtPos() Pos  { return s.Pos }
