package csdom

import (
	"fmt"
	"io"
	"strings"
)

// Dump returns a human-readable representation of the node tree.
func Dump(node Node) string {
	var sb strings.Builder
	fprintNode(&sb, node, 0)
	return sb.String()
}

func flagsString(f MemberFlags) string {
	var parts []string
	if f.Has(FlagPublic) {
		parts = append(parts, "public")
	}
	if f.Has(FlagPrivate) {
		parts = append(parts, "private")
	}
	if f.Has(FlagInternal) {
		parts = append(parts, "internal")
	}
	if f.Has(FlagStatic) {
		parts = append(parts, "static")
	}
	if f.Has(FlagFinal) {
		parts = append(parts, "final")
	}
	if f.Has(FlagAbstract) {
		parts = append(parts, "abstract")
	}
	if f.Has(FlagOverride) {
		parts = append(parts, "override")
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func typeRefString(r *TypeRef) string {
	if r == nil {
		return "void"
	}
	if len(r.Args) == 0 {
		return r.Name
	}
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = typeRefString(a)
	}
	return r.Name + "<" + strings.Join(args, ", ") + ">"
}

func fprintList(w io.Writer, label string, l *StmtList, indent int) {
	if l == nil || len(l.Stmts) == 0 {
		return
	}
	ind := strings.Repeat("  ", indent)
	fmt.Fprintf(w, "%s%s:\n", ind, label)
	for _, s := range l.Stmts {
		fprintNode(w, s, indent+1)
	}
}

func fprintNode(w io.Writer, n Node, indent int) {
	if n == nil {
		return
	}

	ind := strings.Repeat("  ", indent)

	switch n := n.(type) {
	case *CompileUnit:
		fmt.Fprintf(w, "%sCompileUnit\n", ind)
		for _, ns := range n.Namespaces {
			fprintNode(w, ns, indent+1)
		}

	case *Namespace:
		fmt.Fprintf(w, "%sNamespace name=%s\n", ind, n.Name)
		if len(n.Imports) > 0 {
			fmt.Fprintf(w, "%s  Imports:\n", ind)
			for _, imp := range n.Imports {
				fprintNode(w, imp, indent+2)
			}
		}
		for _, t := range n.Types {
			fprintNode(w, t, indent+1)
		}

	case *Import:
		if n.Alias != "" {
			fmt.Fprintf(w, "%sImport %s = %s\n", ind, n.Alias, n.Namespace)
		} else {
			fmt.Fprintf(w, "%sImport %s\n", ind, n.Namespace)
		}

	case *TypeDecl:
		fmt.Fprintf(w, "%sTypeDecl name=%s%s\n", ind, n.Name, flagsString(n.Flags))
		if len(n.Bases) > 0 {
			bases := make([]string, len(n.Bases))
			for i, b := range n.Bases {
				bases[i] = typeRefString(b)
			}
			fmt.Fprintf(w, "%s  Bases: %s\n", ind, strings.Join(bases, ", "))
		}
		for _, m := range n.Members {
			fprintNode(w, m, indent+1)
		}

	case *Method:
		fmt.Fprintf(w, "%sMethod name=%s%s returns=%s\n", ind, n.Name, flagsString(n.Flags), typeRefString(n.Returns))
		if len(n.Params) > 0 {
			fmt.Fprintf(w, "%s  Params:\n", ind)
			for _, p := range n.Params {
				fprintNode(w, p, indent+2)
			}
		}
		fprintList(w, "  Body", n.Body, indent)

	case *Ctor:
		fmt.Fprintf(w, "%sCtor%s\n", ind, flagsString(n.Flags))
		if len(n.Params) > 0 {
			fmt.Fprintf(w, "%s  Params:\n", ind)
			for _, p := range n.Params {
				fprintNode(w, p, indent+2)
			}
		}
		fprintList(w, "  Body", n.Body, indent)

	case *Field:
		fmt.Fprintf(w, "%sField name=%s type=%s%s\n", ind, n.Name, typeRefString(n.Type), flagsString(n.Flags))
		if n.Init != nil {
			fmt.Fprintf(w, "%s  Init:\n", ind)
			fprintNode(w, n.Init, indent+2)
		}

	case *Param:
		fmt.Fprintf(w, "%sParam name=%s type=%s\n", ind, n.Name, typeRefString(n.Type))

	case *AssignStmt:
		fmt.Fprintf(w, "%sAssign\n", ind)
		fmt.Fprintf(w, "%s  Lhs:\n", ind)
		fprintNode(w, n.Lhs, indent+2)
		fmt.Fprintf(w, "%s  Rhs:\n", ind)
		fprintNode(w, n.Rhs, indent+2)

	case *ExprStmt:
		fmt.Fprintf(w, "%sExprStmt\n", ind)
		fprintNode(w, n.X, indent+1)

	case *IfStmt:
		fmt.Fprintf(w, "%sIfStmt\n", ind)
		fmt.Fprintf(w, "%s  Cond:\n", ind)
		fprintNode(w, n.Cond, indent+2)
		fprintList(w, "  Then", n.Then, indent)
		fprintList(w, "  Else", n.Else, indent)

	case *ForeachStmt:
		fmt.Fprintf(w, "%sForeachStmt local=%s type=%s\n", ind, n.Local, typeRefString(n.LocalType))
		fmt.Fprintf(w, "%s  Seq:\n", ind)
		fprintNode(w, n.Seq, indent+2)
		fprintList(w, "  Body", n.Body, indent)

	case *WhileStmt:
		fmt.Fprintf(w, "%sWhileStmt\n", ind)
		fmt.Fprintf(w, "%s  Cond:\n", ind)
		fprintNode(w, n.Cond, indent+2)
		fprintList(w, "  Body", n.Body, indent)

	case *DoWhileStmt:
		fmt.Fprintf(w, "%sDoWhileStmt\n", ind)
		fmt.Fprintf(w, "%s  Cond:\n", ind)
		fprintNode(w, n.Cond, indent+2)
		fprintList(w, "  Body", n.Body, indent)

	case *TryStmt:
		fmt.Fprintf(w, "%sTryStmt\n", ind)
		fprintList(w, "  Body", n.Body, indent)
		for _, c := range n.Catches {
			fmt.Fprintf(w, "%s  Catch local=%s type=%s:\n", ind, c.Local, typeRefString(c.Type))
			fprintList(w, "    Body", c.Body, indent)
		}
		if n.Finally != nil {
			fprintList(w, "  Finally", n.Finally, indent)
		}

	case *UsingStmt:
		if n.Local != "" {
			fmt.Fprintf(w, "%sUsingStmt local=%s\n", ind, n.Local)
		} else {
			fmt.Fprintf(w, "%sUsingStmt\n", ind)
		}
		fmt.Fprintf(w, "%s  Init:\n", ind)
		fprintNode(w, n.Init, indent+2)
		fprintList(w, "  Body", n.Body, indent)

	case *ThrowStmt:
		fmt.Fprintf(w, "%sThrowStmt\n", ind)
		if n.X != nil {
			fprintNode(w, n.X, indent+1)
		}

	case *ReturnStmt:
		fmt.Fprintf(w, "%sReturnStmt\n", ind)
		if n.X != nil {
			fprintNode(w, n.X, indent+1)
		}

	case *BreakStmt:
		fmt.Fprintf(w, "%sBreakStmt\n", ind)

	case *ContinueStmt:
		fmt.Fprintf(w, "%sContinueStmt\n", ind)

	case *YieldStmt:
		fmt.Fprintf(w, "%sYieldStmt\n", ind)
		if n.X != nil {
			fprintNode(w, n.X, indent+1)
		}

	case *CommentStmt:
		fmt.Fprintf(w, "%sComment %q\n", ind, n.Text)

	case *Ident:
		fmt.Fprintf(w, "%sIdent %s\n", ind, n.Name)

	case *IntLit:
		fmt.Fprintf(w, "%sIntLit %d\n", ind, n.Value)

	case *StrLit:
		fmt.Fprintf(w, "%sStrLit %q\n", ind, n.Value)

	case *BoolLit:
		fmt.Fprintf(w, "%sBoolLit %v\n", ind, n.Value)

	case *NullLit:
		fmt.Fprintf(w, "%sNullLit\n", ind)

	case *FieldAccess:
		fmt.Fprintf(w, "%sFieldAccess name=%s\n", ind, n.Name)
		fmt.Fprintf(w, "%s  Target:\n", ind)
		fprintNode(w, n.Target, indent+2)

	case *BinOp:
		fmt.Fprintf(w, "%sBinOp op=%s\n", ind, n.Op)
		fmt.Fprintf(w, "%s  Left:\n", ind)
		fprintNode(w, n.Left, indent+2)
		fmt.Fprintf(w, "%s  Right:\n", ind)
		fprintNode(w, n.Right, indent+2)

	case *UnaryOp:
		fmt.Fprintf(w, "%sUnaryOp op=%s\n", ind, n.Op)
		fprintNode(w, n.X, indent+1)

	case *Call:
		fmt.Fprintf(w, "%sCall\n", ind)
		fmt.Fprintf(w, "%s  Callee:\n", ind)
		fprintNode(w, n.Callee, indent+2)
		if len(n.Args) > 0 {
			fmt.Fprintf(w, "%s  Args:\n", ind)
			for _, a := range n.Args {
				fprintNode(w, a, indent+2)
			}
		}

	case *Index:
		fmt.Fprintf(w, "%sIndex\n", ind)
		fmt.Fprintf(w, "%s  Target:\n", ind)
		fprintNode(w, n.Target, indent+2)
		fmt.Fprintf(w, "%s  Args:\n", ind)
		for _, a := range n.Args {
			fprintNode(w, a, indent+2)
		}

	case *Lambda:
		fmt.Fprintf(w, "%sLambda\n", ind)
		if len(n.Params) > 0 {
			fmt.Fprintf(w, "%s  Params:\n", ind)
			for _, p := range n.Params {
				fprintNode(w, p, indent+2)
			}
		}
		fmt.Fprintf(w, "%s  Body:\n", ind)
		fprintNode(w, n.Body, indent+2)

	case *MethodRef:
		fmt.Fprintf(w, "%sMethodRef name=%s\n", ind, n.Name)
		fmt.Fprintf(w, "%s  Target:\n", ind)
		fprintNode(w, n.Target, indent+2)

	case *TypeRef:
		fmt.Fprintf(w, "%sTypeRef %s\n", ind, typeRefString(n))

	case *TypeRefExpr:
		fmt.Fprintf(w, "%sTypeRefExpr %s\n", ind, typeRefString(n.Ref))

	case *ListInit:
		fmt.Fprintf(w, "%sListInit elem=%s\n", ind, typeRefString(n.ElemType))
		for _, el := range n.Elems {
			fprintNode(w, el, indent+1)
		}

	default:
		fmt.Fprintf(w, "%s<unknown node %T>\n", ind, n)
	}
}
