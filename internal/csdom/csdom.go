package csdom

// Basic interfaces
//
// The node set is closed: setParent is unexported, so only this package
// can introduce new node kinds. The renderer matches exhaustively on it.

type Node interface {
	Parent() Node
	setParent(Node)
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Member is anything that can appear in a type declaration's member list:
// fields, methods, constructors and nested type declarations.
type Member interface {
	Node
	memberNode()
}

// node carries the parent link shared by every node kind.
type node struct {
	parent Node
}

func (n *node) Parent() Node     { return n.parent }
func (n *node) setParent(p Node) { n.parent = p }

// Root follows parent links up to the topmost node.
func Root(n Node) Node {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

// Depth reports how many parent links separate n from its root.
func Depth(n Node) int {
	d := 0
	for n.Parent() != nil {
		n = n.Parent()
		d++
	}
	return d
}

// StmtList is an owned, ordered statement list. Statements appended to it
// are parented to the list's owning node and never move afterwards.
type StmtList struct {
	owner Node
	Stmts []Stmt
}

func newStmtList(owner Node) *StmtList {
	return &StmtList{owner: owner}
}

// Append adds s at the end of the list and parents it to the list's owner.
func (l *StmtList) Append(s Stmt) {
	s.setParent(l.owner)
	l.Stmts = append(l.Stmts, s)
}

// Owner returns the node this list belongs to.
func (l *StmtList) Owner() Node { return l.owner }

// Len returns the number of statements in the list.
func (l *StmtList) Len() int { return len(l.Stmts) }

// ---------- Compile unit / namespaces ----------

type CompileUnit struct {
	node
	Namespaces []*Namespace
}

func NewCompileUnit() *CompileUnit {
	return &CompileUnit{}
}

func (u *CompileUnit) AddNamespace(ns *Namespace) {
	ns.setParent(u)
	u.Namespaces = append(u.Namespaces, ns)
}

type Namespace struct {
	node
	Name    string
	Imports []*Import
	Types   []*TypeDecl
}

func NewNamespace(name string) *Namespace {
	return &Namespace{Name: name}
}

func (ns *Namespace) AddImport(imp *Import) {
	imp.setParent(ns)
	ns.Imports = append(ns.Imports, imp)
}

func (ns *Namespace) AddType(t *TypeDecl) {
	t.setParent(ns)
	ns.Types = append(ns.Types, t)
}

// HasImport reports whether the namespace already imports path.
func (ns *Namespace) HasImport(path string) bool {
	for _, imp := range ns.Imports {
		if imp.Namespace == path {
			return true
		}
	}
	return false
}

// Import is a using-directive. Alias may be "" for a plain import.
type Import struct {
	node
	Alias     string
	Namespace string
}

func NewImport(alias, namespace string) *Import {
	return &Import{Alias: alias, Namespace: namespace}
}

// ---------- Type declarations and members ----------

// MemberFlags carries visibility and modifier bits for type members.
type MemberFlags uint16

const (
	FlagPublic MemberFlags = 1 << iota
	FlagPrivate
	FlagInternal
	FlagStatic
	FlagFinal
	FlagAbstract
	FlagOverride
)

func (f MemberFlags) Has(bit MemberFlags) bool { return f&bit != 0 }

type TypeDecl struct {
	node
	Name    string
	IsClass bool
	Flags   MemberFlags
	Bases   []*TypeRef
	Members []Member
}

func NewTypeDecl(name string, flags MemberFlags, bases []*TypeRef) *TypeDecl {
	t := &TypeDecl{Name: name, IsClass: true, Flags: flags}
	for _, b := range bases {
		b.setParent(t)
		t.Bases = append(t.Bases, b)
	}
	return t
}

func (t *TypeDecl) AddMember(m Member) {
	m.setParent(t)
	t.Members = append(t.Members, m)
}

func (t *TypeDecl) memberNode() {}

type Param struct {
	node
	Name string
	Type *TypeRef
}

func NewParam(name string, typ *TypeRef) *Param {
	p := &Param{Name: name, Type: typ}
	if typ != nil {
		typ.setParent(p)
	}
	return p
}

type Method struct {
	node
	Name    string
	Flags   MemberFlags
	Params  []*Param
	Returns *TypeRef // nil for void
	Body    *StmtList
}

func NewMethod(name string, params []*Param, returns *TypeRef, flags MemberFlags) *Method {
	m := &Method{Name: name, Flags: flags, Returns: returns}
	for _, p := range params {
		p.setParent(m)
		m.Params = append(m.Params, p)
	}
	if returns != nil {
		returns.setParent(m)
	}
	m.Body = newStmtList(m)
	return m
}

func (m *Method) memberNode() {}

type Ctor struct {
	node
	Flags  MemberFlags
	Params []*Param
	Body   *StmtList
}

func NewCtor(params []*Param, flags MemberFlags) *Ctor {
	c := &Ctor{Flags: flags}
	for _, p := range params {
		p.setParent(c)
		c.Params = append(c.Params, p)
	}
	c.Body = newStmtList(c)
	return c
}

func (c *Ctor) memberNode() {}

type Field struct {
	node
	Name  string
	Type  *TypeRef
	Flags MemberFlags
	Init  Expr // nil if no initializer
}

func NewField(name string, typ *TypeRef, flags MemberFlags, init Expr) *Field {
	f := &Field{Name: name, Type: typ, Flags: flags, Init: init}
	if typ != nil {
		typ.setParent(f)
	}
	if init != nil {
		init.setParent(f)
	}
	return f
}

func (f *Field) memberNode() {}

// ---------- Statements ----------

type AssignStmt struct {
	node
	Lhs Expr
	Rhs Expr
}

func NewAssign(lhs, rhs Expr) *AssignStmt {
	s := &AssignStmt{Lhs: lhs, Rhs: rhs}
	lhs.setParent(s)
	rhs.setParent(s)
	return s
}

func (s *AssignStmt) stmtNode() {}

type ExprStmt struct {
	node
	X Expr
}

func NewExprStmt(x Expr) *ExprStmt {
	s := &ExprStmt{X: x}
	x.setParent(s)
	return s
}

func (s *ExprStmt) stmtNode() {}

type IfStmt struct {
	node
	Cond Expr
	Then *StmtList
	Else *StmtList // empty list when there is no else branch
}

func NewIf(cond Expr) *IfStmt {
	s := &IfStmt{Cond: cond}
	cond.setParent(s)
	s.Then = newStmtList(s)
	s.Else = newStmtList(s)
	return s
}

func (s *IfStmt) stmtNode() {}

type ForeachStmt struct {
	node
	Local     string
	LocalType *TypeRef
	Seq       Expr
	Body      *StmtList
}

func NewForeach(local string, localType *TypeRef, seq Expr) *ForeachStmt {
	s := &ForeachStmt{Local: local, LocalType: localType, Seq: seq}
	if localType != nil {
		localType.setParent(s)
	}
	seq.setParent(s)
	s.Body = newStmtList(s)
	return s
}

func (s *ForeachStmt) stmtNode() {}

type WhileStmt struct {
	node
	Cond Expr
	Body *StmtList
}

func NewWhile(cond Expr) *WhileStmt {
	s := &WhileStmt{Cond: cond}
	cond.setParent(s)
	s.Body = newStmtList(s)
	return s
}

func (s *WhileStmt) stmtNode() {}

type DoWhileStmt struct {
	node
	Cond Expr
	Body *StmtList
}

func NewDoWhile(cond Expr) *DoWhileStmt {
	s := &DoWhileStmt{Cond: cond}
	cond.setParent(s)
	s.Body = newStmtList(s)
	return s
}

func (s *DoWhileStmt) stmtNode() {}

type TryStmt struct {
	node
	Body    *StmtList
	Catches []*CatchClause
	Finally *StmtList // nil if no finally block
}

func NewTry() *TryStmt {
	s := &TryStmt{}
	s.Body = newStmtList(s)
	return s
}

// AddCatch appends a catch clause for the given local name and exception type.
func (s *TryStmt) AddCatch(local string, typ *TypeRef) *CatchClause {
	c := &CatchClause{Local: local, Type: typ}
	c.setParent(s)
	if typ != nil {
		typ.setParent(c)
	}
	c.Body = newStmtList(c)
	s.Catches = append(s.Catches, c)
	return c
}

// EnsureFinally allocates the finally list if it does not exist yet.
func (s *TryStmt) EnsureFinally() *StmtList {
	if s.Finally == nil {
		s.Finally = newStmtList(s)
	}
	return s.Finally
}

func (s *TryStmt) stmtNode() {}

type CatchClause struct {
	node
	Local string
	Type  *TypeRef
	Body  *StmtList
}

type UsingStmt struct {
	node
	Local string // "" when the resource is a bare expression
	Init  Expr
	Body  *StmtList
}

func NewUsing(local string, init Expr) *UsingStmt {
	s := &UsingStmt{Local: local, Init: init}
	init.setParent(s)
	s.Body = newStmtList(s)
	return s
}

func (s *UsingStmt) stmtNode() {}

type ThrowStmt struct {
	node
	X Expr // nil for a bare rethrow
}

func NewThrow(x Expr) *ThrowStmt {
	s := &ThrowStmt{X: x}
	if x != nil {
		x.setParent(s)
	}
	return s
}

func (s *ThrowStmt) stmtNode() {}

type ReturnStmt struct {
	node
	X Expr // nil for a bare return
}

func NewReturn(x Expr) *ReturnStmt {
	s := &ReturnStmt{X: x}
	if x != nil {
		x.setParent(s)
	}
	return s
}

func (s *ReturnStmt) stmtNode() {}

type BreakStmt struct {
	node
}

func NewBreak() *BreakStmt { return &BreakStmt{} }

func (s *BreakStmt) stmtNode() {}

type ContinueStmt struct {
	node
}

func NewContinue() *ContinueStmt { return &ContinueStmt{} }

func (s *ContinueStmt) stmtNode() {}

type YieldStmt struct {
	node
	X Expr // nil for yield break
}

func NewYield(x Expr) *YieldStmt {
	s := &YieldStmt{X: x}
	if x != nil {
		x.setParent(s)
	}
	return s
}

func (s *YieldStmt) stmtNode() {}

type CommentStmt struct {
	node
	Text string
}

func NewComment(text string) *CommentStmt { return &CommentStmt{Text: text} }

func (s *CommentStmt) stmtNode() {}

// ---------- Expressions ----------

type Ident struct {
	node
	Name string
}

func NewIdent(name string) *Ident { return &Ident{Name: name} }

func (e *Ident) exprNode() {}

type IntLit struct {
	node
	Value int64
}

func NewIntLit(v int64) *IntLit { return &IntLit{Value: v} }

func (e *IntLit) exprNode() {}

type StrLit struct {
	node
	Value string
}

func NewStrLit(v string) *StrLit { return &StrLit{Value: v} }

func (e *StrLit) exprNode() {}

type BoolLit struct {
	node
	Value bool
}

func NewBoolLit(v bool) *BoolLit { return &BoolLit{Value: v} }

func (e *BoolLit) exprNode() {}

type NullLit struct {
	node
}

func NewNullLit() *NullLit { return &NullLit{} }

func (e *NullLit) exprNode() {}

type FieldAccess struct {
	node
	Target Expr
	Name   string
}

func NewFieldAccess(target Expr, name string) *FieldAccess {
	e := &FieldAccess{Target: target, Name: name}
	target.setParent(e)
	return e
}

func (e *FieldAccess) exprNode() {}

// Operator is the surface form of a binary or unary operator.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"
	OpEq  Operator = "=="
	OpNeq Operator = "!="
	OpLt  Operator = "<"
	OpLte Operator = "<="
	OpGt  Operator = ">"
	OpGte Operator = ">="
	OpAnd Operator = "&&"
	OpOr  Operator = "||"
	OpNot Operator = "!"
	OpNeg Operator = "-"
)

type BinOp struct {
	node
	Op    Operator
	Left  Expr
	Right Expr
}

func NewBinOp(op Operator, left, right Expr) *BinOp {
	e := &BinOp{Op: op, Left: left, Right: right}
	left.setParent(e)
	right.setParent(e)
	return e
}

func (e *BinOp) exprNode() {}

type UnaryOp struct {
	node
	Op Operator
	X  Expr
}

func NewUnaryOp(op Operator, x Expr) *UnaryOp {
	e := &UnaryOp{Op: op, X: x}
	x.setParent(e)
	return e
}

func (e *UnaryOp) exprNode() {}

type Call struct {
	node
	Callee Expr
	Args   []Expr
}

func NewCall(callee Expr, args ...Expr) *Call {
	e := &Call{Callee: callee}
	callee.setParent(e)
	for _, a := range args {
		a.setParent(e)
		e.Args = append(e.Args, a)
	}
	return e
}

func (e *Call) exprNode() {}

type Index struct {
	node
	Target Expr
	Args   []Expr
}

func NewIndex(target Expr, args ...Expr) *Index {
	e := &Index{Target: target}
	target.setParent(e)
	for _, a := range args {
		a.setParent(e)
		e.Args = append(e.Args, a)
	}
	return e
}

func (e *Index) exprNode() {}

// Lambda is an expression-bodied lambda.
type Lambda struct {
	node
	Params []*Param
	Body   Expr
}

func NewLambda(params []*Param, body Expr) *Lambda {
	e := &Lambda{Body: body}
	for _, p := range params {
		p.setParent(e)
		e.Params = append(e.Params, p)
	}
	body.setParent(e)
	return e
}

func (e *Lambda) exprNode() {}

type MethodRef struct {
	node
	Target Expr
	Name   string
}

func NewMethodRef(target Expr, name string) *MethodRef {
	e := &MethodRef{Target: target, Name: name}
	target.setParent(e)
	return e
}

func (e *MethodRef) exprNode() {}

// TypeRef names a type, optionally with generic arguments.
type TypeRef struct {
	node
	Name string
	Args []*TypeRef
}

func NewTypeRef(name string, args ...*TypeRef) *TypeRef {
	r := &TypeRef{Name: name}
	for _, a := range args {
		a.setParent(r)
		r.Args = append(r.Args, a)
	}
	return r
}

// TypeRefExpr places a type reference in expression position
// (e.g. the receiver of a static call).
type TypeRefExpr struct {
	node
	Ref *TypeRef
}

func NewTypeRefExpr(ref *TypeRef) *TypeRefExpr {
	e := &TypeRefExpr{Ref: ref}
	ref.setParent(e)
	return e
}

func (e *TypeRefExpr) exprNode() {}

type ListInit struct {
	node
	ElemType *TypeRef
	Elems    []Expr
}

func NewListInit(elemType *TypeRef, elems ...Expr) *ListInit {
	e := &ListInit{ElemType: elemType}
	if elemType != nil {
		elemType.setParent(e)
	}
	for _, el := range elems {
		el.setParent(e)
		e.Elems = append(e.Elems, el)
	}
	return e
}

func (e *ListInit) exprNode() {}
