package gen_test

import (
	"errors"
	"testing"

	"cstree/internal/csdom"
	"cstree/internal/gen"
)

func TestBuild_PointClassDirectToNamespace(t *testing.T) {
	b := gen.New("point_module", "Translated")

	b.Class("Point", csdom.FlagPublic, nil, func() {
		b.Field("x", b.TypeRef("int"), csdom.FlagPublic, nil)
		b.Field("y", b.TypeRef("int"), csdom.FlagPublic, nil)
	})

	ns := b.Namespace()
	var points []*csdom.TypeDecl
	for _, typ := range ns.Types {
		if typ.Name == "Point" {
			points = append(points, typ)
		}
	}
	if len(points) != 1 {
		t.Fatalf("expected exactly one Point type in namespace, got %d", len(points))
	}
	if len(points[0].Members) != 2 {
		t.Fatalf("expected 2 fields on Point, got %d members", len(points[0].Members))
	}
	for _, m := range points[0].Members {
		if _, ok := m.(*csdom.Field); !ok {
			t.Fatalf("expected only fields on Point, got %T", m)
		}
	}

	// The synthetic module type must stay empty: direct-to-namespace mode
	// routed the class past it.
	mod := ns.Types[0]
	if mod.Name != "point_module" {
		t.Fatalf("expected module type first in namespace, got %q", mod.Name)
	}
	if len(mod.Members) != 0 {
		t.Fatalf("expected empty module type member list, got %d members", len(mod.Members))
	}
}

func TestBuild_IfElseAssign(t *testing.T) {
	b := gen.New("m", "Translated")

	var body *csdom.StmtList
	b.Method("run", nil, nil, csdom.FlagPublic|csdom.FlagStatic, func() {
		body = b.Scope()
		b.If(csdom.NewIdent("cond"),
			func() { b.Assign(csdom.NewIdent("a"), csdom.NewIntLit(1)) },
			func() { b.Assign(csdom.NewIdent("a"), csdom.NewIntLit(2)) },
		)
	})

	if body.Len() != 1 {
		t.Fatalf("expected exactly one statement in method body, got %d", body.Len())
	}
	ifStmt, ok := body.Stmts[0].(*csdom.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", body.Stmts[0])
	}
	if ifStmt.Then.Len() != 1 || ifStmt.Else.Len() != 1 {
		t.Fatalf("expected 1 statement per branch, got then=%d else=%d", ifStmt.Then.Len(), ifStmt.Else.Len())
	}
	thenAssign, ok := ifStmt.Then.Stmts[0].(*csdom.AssignStmt)
	if !ok {
		t.Fatalf("expected assignment in then branch, got %T", ifStmt.Then.Stmts[0])
	}
	if lit, ok := thenAssign.Rhs.(*csdom.IntLit); !ok || lit.Value != 1 {
		t.Fatalf("expected a=1 in then branch, got %v", thenAssign.Rhs)
	}
	elseAssign := ifStmt.Else.Stmts[0].(*csdom.AssignStmt)
	if lit, ok := elseAssign.Rhs.(*csdom.IntLit); !ok || lit.Value != 2 {
		t.Fatalf("expected a=2 in else branch, got %v", elseAssign.Rhs)
	}
}

func TestBuild_NestedWhileScopeRestore(t *testing.T) {
	b := gen.New("m", "Translated")

	method := b.Method("loops", nil, nil, csdom.FlagPublic, func() {
		before := b.Scope()
		b.While(csdom.NewIdent("cond1"), func() {
			b.While(csdom.NewIdent("cond2"), func() {
				b.Break()
			})
		})
		if b.Scope() != before {
			t.Fatalf("scope not restored after nested whiles: got %p want %p", b.Scope(), before)
		}
	})

	if method.Body.Len() != 1 {
		t.Fatalf("expected one outer while in method body, got %d", method.Body.Len())
	}
	outer := method.Body.Stmts[0].(*csdom.WhileStmt)
	inner := outer.Body.Stmts[0].(*csdom.WhileStmt)
	if _, ok := inner.Body.Stmts[0].(*csdom.BreakStmt); !ok {
		t.Fatalf("expected break in inner while, got %T", inner.Body.Stmts[0])
	}
}

func TestScopeBalance_DeepNesting(t *testing.T) {
	b := gen.New("m", "Translated")

	b.Method("deep", nil, nil, csdom.FlagPublic, func() {
		before := b.Scope()

		var nest func(depth int)
		nest = func(depth int) {
			if depth == 0 {
				b.Return(nil)
				return
			}
			b.If(csdom.NewIdent("cond"), func() { nest(depth - 1) }, nil)
		}
		nest(50)

		if b.Scope() != before {
			t.Fatalf("scope not restored after 50 nested ifs")
		}
	})

	if b.Scope() != nil {
		t.Fatalf("expected nil scope after method, got %p", b.Scope())
	}
}

func TestEnsureImport_Idempotent(t *testing.T) {
	b := gen.New("m", "Translated")

	b.EnsureImport("System")
	b.EnsureImport("System")
	b.EnsureImport("System.Text")

	imports := b.Namespace().Imports
	if len(imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(imports))
	}
	if imports[0].Namespace != "System" || imports[1].Namespace != "System.Text" {
		t.Fatalf("imports out of order: %q, %q", imports[0].Namespace, imports[1].Namespace)
	}
}

func TestImportAlias_UnconditionalAndEscaped(t *testing.T) {
	b := gen.New("m", "Translated")

	b.ImportAlias("sys", "System")
	b.ImportAlias("sys", "System")
	imp := b.ImportAlias("class", "Legacy.Naming")

	imports := b.Namespace().Imports
	if len(imports) != 3 {
		t.Fatalf("expected raw imports to append unconditionally, got %d", len(imports))
	}
	if imp.Alias != "@class" {
		t.Fatalf("expected reserved alias to be escaped, got %q", imp.Alias)
	}
}

func TestPlacement_NestedClass(t *testing.T) {
	b := gen.New("m", "Translated")

	var inner *csdom.TypeDecl
	outer := b.Class("Outer", csdom.FlagPublic, nil, func() {
		inner = b.Class("Inner", csdom.FlagPublic, nil, nil)
	})

	// Inner was declared outside direct-to-namespace mode: it must nest.
	for _, typ := range b.Namespace().Types {
		if typ == inner {
			t.Fatalf("nested class leaked into the namespace type list")
		}
	}
	if len(outer.Members) != 1 || outer.Members[0] != inner {
		t.Fatalf("expected Inner as the single member of Outer")
	}
	if inner.Parent() != outer {
		t.Fatalf("expected Inner parented to Outer, got %T", inner.Parent())
	}
}

func TestMethod_AttachedBeforeBodyRuns(t *testing.T) {
	b := gen.New("m", "Translated")

	b.Class("Widget", csdom.FlagPublic, nil, func() {
		b.Method("Render", nil, nil, csdom.FlagPublic, func() {
			members := b.CurrentType().Members
			if len(members) != 1 {
				t.Fatalf("expected method attached before body runs, got %d members", len(members))
			}
			if m, ok := members[0].(*csdom.Method); !ok || m.Name != "Render" {
				t.Fatalf("expected Render method, got %T", members[0])
			}
		})
	})
}

func TestTry_CatchFinallyScopes(t *testing.T) {
	b := gen.New("m", "Translated")

	var tryStmt *csdom.TryStmt
	method := b.Method("risky", nil, nil, csdom.FlagPublic, func() {
		before := b.Scope()
		tryStmt = b.Try(
			func() { b.SideEffect(b.Appl(csdom.NewIdent("work"))) },
			[]gen.CatchSpec{
				{Local: "e", Type: b.TypeRef("Exception"), Body: func() { b.Throw(nil) }},
				{Local: "e2", Type: b.TypeRef("IOException"), Body: func() { b.Return(nil) }},
			},
			func() { b.SideEffect(b.Appl(csdom.NewIdent("cleanup"))) },
		)
		if b.Scope() != before {
			t.Fatalf("scope not restored after try")
		}
	})

	if tryStmt.Body.Len() != 1 {
		t.Fatalf("expected 1 statement in try body, got %d", tryStmt.Body.Len())
	}
	if len(tryStmt.Catches) != 2 {
		t.Fatalf("expected 2 catch clauses, got %d", len(tryStmt.Catches))
	}
	first := tryStmt.Catches[0]
	if first.Local != "e" || first.Body.Len() != 1 {
		t.Fatalf("unexpected first catch clause: local=%q stmts=%d", first.Local, first.Body.Len())
	}
	if th, ok := first.Body.Stmts[0].(*csdom.ThrowStmt); !ok || th.X != nil {
		t.Fatalf("expected bare rethrow in first catch")
	}
	if tryStmt.Finally == nil || tryStmt.Finally.Len() != 1 {
		t.Fatalf("expected 1 statement in finally")
	}
	if method.Body.Len() != 1 {
		t.Fatalf("expected only the try in method body, got %d", method.Body.Len())
	}
}

func TestUsingBlock(t *testing.T) {
	b := gen.New("m", "Translated")

	b.Method("copy", nil, nil, csdom.FlagPublic, func() {
		b.UsingBlock("f", b.Appl(csdom.NewIdent("open"), csdom.NewStrLit("data.txt")), func() {
			b.SideEffect(b.Appl(b.Access(csdom.NewIdent("f"), "Read")))
		})
	})

	mod := b.Namespace().Types[0]
	method := mod.Members[0].(*csdom.Method)
	using, ok := method.Body.Stmts[0].(*csdom.UsingStmt)
	if !ok {
		t.Fatalf("expected UsingStmt, got %T", method.Body.Stmts[0])
	}
	if using.Local != "f" || using.Body.Len() != 1 {
		t.Fatalf("unexpected using block: local=%q stmts=%d", using.Local, using.Body.Len())
	}
}

func TestPanicInCallback_RestoresContext(t *testing.T) {
	b := gen.New("m", "Translated")

	b.Method("run", nil, nil, csdom.FlagPublic, func() {
		before := b.Scope()

		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic to propagate")
				}
			}()
			b.While(csdom.NewIdent("cond"), func() {
				panic("driver failure")
			})
		}()

		if b.Scope() != before {
			t.Fatalf("scope not restored after panicking callback")
		}
		// The builder must stay usable.
		b.Return(nil)
		if before.Len() != 2 {
			t.Fatalf("expected while + return in body, got %d statements", before.Len())
		}
	})
}

func TestAttribute_Unsupported(t *testing.T) {
	b := gen.New("m", "Translated")

	node, err := b.Attribute("Serializable")
	if !errors.Is(err, gen.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if node != nil {
		t.Fatalf("expected no node from unsupported operation, got %T", node)
	}
}

func TestListInit_ImportsCollections(t *testing.T) {
	b := gen.New("m", "Translated")

	b.Method("build", nil, nil, csdom.FlagPublic, func() {
		lhs := csdom.NewIdent("xs")
		b.Assign(lhs, b.ListInit(b.TypeRef("int"), csdom.NewIntLit(1), csdom.NewIntLit(2)))
		b.Assign(csdom.NewIdent("ys"), b.ListInit(b.TypeRef("string")))
	})

	count := 0
	for _, imp := range b.Namespace().Imports {
		if imp.Namespace == "System.Collections.Generic" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected a single collections import, got %d", count)
	}
}

func TestStatementOutsideScope_RecordsError(t *testing.T) {
	b := gen.New("m", "Translated")

	b.Break()

	if len(b.Errs()) != 1 {
		t.Fatalf("expected 1 usage error, got %d", len(b.Errs()))
	}
}

func TestContainment_ParentChainReachesRoot(t *testing.T) {
	b := gen.New("m", "Translated")

	var brk *csdom.BreakStmt
	b.Method("loops", nil, nil, csdom.FlagPublic, func() {
		b.While(csdom.NewIdent("c1"), func() {
			b.While(csdom.NewIdent("c2"), func() {
				brk = b.Break()
			})
		})
	})

	if root := csdom.Root(brk); root != b.Unit() {
		t.Fatalf("expected parent chain to reach the compile unit, got %T", root)
	}
	// break -> inner while -> outer while -> method -> module type ->
	// namespace -> compile unit
	if d := csdom.Depth(brk); d != 6 {
		t.Fatalf("expected depth 6, got %d", d)
	}
}

func TestCtor_BodyAndSelfReference(t *testing.T) {
	b := gen.New("m", "Translated")

	b.Class("Point", csdom.FlagPublic, nil, func() {
		b.Field("x", b.TypeRef("int"), csdom.FlagPrivate, nil)
		params := []*csdom.Param{csdom.NewParam("x", b.TypeRef("int"))}
		b.Ctor(params, csdom.FlagPublic, func() {
			b.Assign(b.Access(csdom.NewIdent("this"), "x"), csdom.NewIdent("x"))
		})
	})

	var point *csdom.TypeDecl
	for _, typ := range b.Namespace().Types {
		if typ.Name == "Point" {
			point = typ
		}
	}
	ctor, ok := point.Members[1].(*csdom.Ctor)
	if !ok {
		t.Fatalf("expected ctor as second member, got %T", point.Members[1])
	}
	if ctor.Body.Len() != 1 {
		t.Fatalf("expected 1 assignment in ctor body, got %d", ctor.Body.Len())
	}
}

func TestClass_ResetsMethodAndMode(t *testing.T) {
	b := gen.New("m", "Translated")

	b.Method("init", nil, nil, csdom.FlagPublic|csdom.FlagStatic, func() {
		// Inside a method of the module type the direct-to-namespace
		// mode is still on, so Helper goes top level.
		helper := b.Class("Helper", csdom.FlagPublic, nil, func() {
			if b.Scope() != nil {
				t.Fatalf("expected no active scope inside class body")
			}
			b.Method("assist", nil, nil, csdom.FlagPublic, nil)
		})
		found := false
		for _, typ := range b.Namespace().Types {
			if typ == helper {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected Helper in namespace type list")
		}
	})
}
