// Package gen builds the code-model tree for one translated module.
//
// An external driver calls one operation per emitted construct; operations
// that introduce a nested body take a callback which emits that body. The
// builder keeps a current-context tuple (scope, type, method, namespace,
// placement mode) and restores it around every callback, so nested emission
// composes to any depth and a failing callback cannot corrupt the context.
package gen

import (
	"errors"
	"fmt"

	"cstree/internal/csdom"
	"cstree/internal/keywords"
)

// ErrUnsupported is returned by operations the builder deliberately does
// not implement.
var ErrUnsupported = errors.New("unsupported operation")

// collectionsNS is imported as a side effect of list initializers, since
// their rendered form names List<T>.
const collectionsNS = "System.Collections.Generic"

// context is the mutable emission state. Nested-body operations save it,
// repoint it at the new body, and restore it on the way out.
type context struct {
	scope  *csdom.StmtList
	typ    *csdom.TypeDecl
	method csdom.Member // *csdom.Method or *csdom.Ctor, nil outside bodies
	ns     *csdom.Namespace

	// declsToNS routes class declarations to the namespace's type list
	// instead of the current type's member list. Active only while
	// emitting into the synthetic module-initializer type.
	declsToNS bool
}

// Builder assembles one compile unit. One builder per translated module;
// hand the unit to the renderer and discard the builder.
type Builder struct {
	unit *csdom.CompileUnit
	ctx  context
	errs []error
}

// New seeds a builder with one namespace and one static module type
// representing the translated module's initializer. Declarations emitted
// at this level attach directly to the namespace.
func New(moduleName, nsName string) *Builder {
	unit := csdom.NewCompileUnit()
	ns := csdom.NewNamespace(nsName)
	unit.AddNamespace(ns)
	mod := csdom.NewTypeDecl(moduleName, csdom.FlagPublic|csdom.FlagStatic, nil)
	ns.AddType(mod)
	return &Builder{
		unit: unit,
		ctx:  context{typ: mod, ns: ns, declsToNS: true},
	}
}

// Unit returns the compile unit under construction.
func (b *Builder) Unit() *csdom.CompileUnit { return b.unit }

// Namespace returns the namespace currently receiving imports and types.
func (b *Builder) Namespace() *csdom.Namespace { return b.ctx.ns }

// CurrentType returns the type declaration currently receiving members.
func (b *Builder) CurrentType() *csdom.TypeDecl { return b.ctx.typ }

// Scope returns the statement list currently receiving statements.
// It is nil outside method and constructor bodies.
func (b *Builder) Scope() *csdom.StmtList { return b.ctx.scope }

// Errs returns the usage errors accumulated so far.
func (b *Builder) Errs() []error { return b.errs }

func (b *Builder) addError(format string, args ...interface{}) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

// appendStmt attaches s to the current scope. The builder performs no
// semantic validation, but it does keep its own invariant: statements can
// only be emitted while a scope is active.
func (b *Builder) appendStmt(s csdom.Stmt) {
	if b.ctx.scope == nil {
		b.addError("statement %T emitted outside any method body", s)
		return
	}
	b.ctx.scope.Append(s)
}

// ---------- Declarations ----------

// Class declares a class and runs body with the new type current.
// Placement follows the module-initializer rule: while declsToNS is
// active the class attaches to the namespace, otherwise it nests inside
// the current type.
func (b *Builder) Class(name string, flags csdom.MemberFlags, bases []*csdom.TypeRef, body func()) *csdom.TypeDecl {
	t := csdom.NewTypeDecl(name, flags, bases)
	if b.ctx.declsToNS {
		b.ctx.ns.AddType(t)
	} else {
		b.ctx.typ.AddMember(t)
	}

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.typ = t
	b.ctx.method = nil
	b.ctx.scope = nil
	b.ctx.declsToNS = false
	if body != nil {
		body()
	}
	return t
}

// Method declares a method on the current type and runs body with the
// method's statement list as the current scope. The member is attached
// before body runs so the body can reference the method being built.
func (b *Builder) Method(name string, params []*csdom.Param, returns *csdom.TypeRef, flags csdom.MemberFlags, body func()) *csdom.Method {
	m := csdom.NewMethod(name, params, returns, flags)
	b.ctx.typ.AddMember(m)

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.method = m
	b.ctx.scope = m.Body
	if body != nil {
		body()
	}
	return m
}

// Ctor declares a constructor on the current type. Same contract as Method.
func (b *Builder) Ctor(params []*csdom.Param, flags csdom.MemberFlags, body func()) *csdom.Ctor {
	c := csdom.NewCtor(params, flags)
	b.ctx.typ.AddMember(c)

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.method = c
	b.ctx.scope = c.Body
	if body != nil {
		body()
	}
	return c
}

// Field declares a field on the current type. init may be nil.
func (b *Builder) Field(name string, typ *csdom.TypeRef, flags csdom.MemberFlags, init csdom.Expr) *csdom.Field {
	f := csdom.NewField(name, typ, flags, init)
	b.ctx.typ.AddMember(f)
	return f
}

// Attribute would construct a custom attribute. Attribute emission is not
// supported; the operation exists so drivers get an explicit failure
// instead of a malformed node.
func (b *Builder) Attribute(name string, args ...csdom.Expr) (csdom.Expr, error) {
	return nil, fmt.Errorf("custom attribute %q: %w", name, ErrUnsupported)
}

// ---------- Control flow ----------

// If emits a conditional. els may be nil for a plain if.
func (b *Builder) If(cond csdom.Expr, then, els func()) *csdom.IfStmt {
	st := csdom.NewIf(cond)
	b.appendStmt(st)

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.scope = st.Then
	if then != nil {
		then()
	}
	if els != nil {
		b.ctx.scope = st.Else
		els()
	}
	return st
}

// Foreach emits an enumeration loop over seq binding local.
func (b *Builder) Foreach(local string, localType *csdom.TypeRef, seq csdom.Expr, body func()) *csdom.ForeachStmt {
	st := csdom.NewForeach(local, localType, seq)
	b.appendStmt(st)

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.scope = st.Body
	if body != nil {
		body()
	}
	return st
}

// While emits a pre-tested loop.
func (b *Builder) While(cond csdom.Expr, body func()) *csdom.WhileStmt {
	st := csdom.NewWhile(cond)
	b.appendStmt(st)

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.scope = st.Body
	if body != nil {
		body()
	}
	return st
}

// DoWhile emits a post-tested loop.
func (b *Builder) DoWhile(cond csdom.Expr, body func()) *csdom.DoWhileStmt {
	st := csdom.NewDoWhile(cond)
	b.appendStmt(st)

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.scope = st.Body
	if body != nil {
		body()
	}
	return st
}

// CatchSpec describes one catch clause of a Try.
type CatchSpec struct {
	Local string
	Type  *csdom.TypeRef
	Body  func()
}

// Try emits a try statement with any number of catch clauses and an
// optional finally block. catches and finally may be nil.
func (b *Builder) Try(body func(), catches []CatchSpec, finally func()) *csdom.TryStmt {
	st := csdom.NewTry()
	b.appendStmt(st)

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.scope = st.Body
	if body != nil {
		body()
	}
	for _, spec := range catches {
		clause := st.AddCatch(spec.Local, spec.Type)
		b.ctx.scope = clause.Body
		if spec.Body != nil {
			spec.Body()
		}
	}
	if finally != nil {
		b.ctx.scope = st.EnsureFinally()
		finally()
	}
	return st
}

// UsingBlock emits a resource-scoped block. local may be "" when the
// resource is a bare expression.
func (b *Builder) UsingBlock(local string, init csdom.Expr, body func()) *csdom.UsingStmt {
	st := csdom.NewUsing(local, init)
	b.appendStmt(st)

	prev := b.ctx
	defer func() { b.ctx = prev }()
	b.ctx.scope = st.Body
	if body != nil {
		body()
	}
	return st
}

// ---------- Leaf statements ----------

// Assign emits lhs = rhs.
func (b *Builder) Assign(lhs, rhs csdom.Expr) *csdom.AssignStmt {
	st := csdom.NewAssign(lhs, rhs)
	b.appendStmt(st)
	return st
}

// SideEffect emits an expression evaluated for its effect.
func (b *Builder) SideEffect(x csdom.Expr) *csdom.ExprStmt {
	st := csdom.NewExprStmt(x)
	b.appendStmt(st)
	return st
}

// Throw emits a throw; x may be nil for a bare rethrow.
func (b *Builder) Throw(x csdom.Expr) *csdom.ThrowStmt {
	st := csdom.NewThrow(x)
	b.appendStmt(st)
	return st
}

// Return emits a return; x may be nil.
func (b *Builder) Return(x csdom.Expr) *csdom.ReturnStmt {
	st := csdom.NewReturn(x)
	b.appendStmt(st)
	return st
}

// Break emits a break. The builder does not check that a loop encloses it.
func (b *Builder) Break() *csdom.BreakStmt {
	st := csdom.NewBreak()
	b.appendStmt(st)
	return st
}

// Continue emits a continue.
func (b *Builder) Continue() *csdom.ContinueStmt {
	st := csdom.NewContinue()
	b.appendStmt(st)
	return st
}

// Yield emits a yield return, or yield break when x is nil.
func (b *Builder) Yield(x csdom.Expr) *csdom.YieldStmt {
	st := csdom.NewYield(x)
	b.appendStmt(st)
	return st
}

// Comment emits a comment line into the current scope.
func (b *Builder) Comment(text string) *csdom.CommentStmt {
	st := csdom.NewComment(text)
	b.appendStmt(st)
	return st
}

// ---------- Expressions ----------

// Access builds target.name.
func (b *Builder) Access(target csdom.Expr, name string) *csdom.FieldAccess {
	return csdom.NewFieldAccess(target, name)
}

// BinOp builds a binary operation.
func (b *Builder) BinOp(op csdom.Operator, left, right csdom.Expr) *csdom.BinOp {
	return csdom.NewBinOp(op, left, right)
}

// Appl builds a call.
func (b *Builder) Appl(callee csdom.Expr, args ...csdom.Expr) *csdom.Call {
	return csdom.NewCall(callee, args...)
}

// Aref builds an indexer access.
func (b *Builder) Aref(target csdom.Expr, args ...csdom.Expr) *csdom.Index {
	return csdom.NewIndex(target, args...)
}

// Lambda builds an expression-bodied lambda.
func (b *Builder) Lambda(params []*csdom.Param, body csdom.Expr) *csdom.Lambda {
	return csdom.NewLambda(params, body)
}

// MethodRef builds a bound method reference.
func (b *Builder) MethodRef(target csdom.Expr, name string) *csdom.MethodRef {
	return csdom.NewMethodRef(target, name)
}

// TypeRef builds a type reference with optional generic arguments.
func (b *Builder) TypeRef(name string, args ...*csdom.TypeRef) *csdom.TypeRef {
	return csdom.NewTypeRef(name, args...)
}

// TypeRefExpr places a type reference in expression position.
func (b *Builder) TypeRefExpr(ref *csdom.TypeRef) *csdom.TypeRefExpr {
	return csdom.NewTypeRefExpr(ref)
}

// ListInit builds a list initializer. The collections namespace is imported
// as a side effect because the rendered form names List<T>.
func (b *Builder) ListInit(elemType *csdom.TypeRef, elems ...csdom.Expr) *csdom.ListInit {
	b.EnsureImport(collectionsNS)
	return csdom.NewListInit(elemType, elems...)
}

// ---------- Imports and identifiers ----------

// EnsureImport adds a plain import of ns unless it is already present.
func (b *Builder) EnsureImport(ns string) {
	if b.ctx.ns.HasImport(ns) {
		return
	}
	b.ctx.ns.AddImport(csdom.NewImport("", ns))
}

// ImportAlias unconditionally appends an aliased import, for drivers that
// need explicit ordering or aliasing rather than deduplication. The alias
// is escaped if it collides with a reserved word.
func (b *Builder) ImportAlias(alias, ns string) *csdom.Import {
	imp := csdom.NewImport(keywords.Escape(alias), ns)
	b.ctx.ns.AddImport(imp)
	return imp
}

// EscapeName escapes an identifier that collides with a reserved word.
func (b *Builder) EscapeName(name string) string {
	return keywords.Escape(name)
}
