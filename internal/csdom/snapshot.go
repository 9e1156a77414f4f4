package csdom

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Snapshot encodes a finished compile unit as kind-tagged JSON. It is a
// tooling artifact: dumps for golden files, diffing two translation runs,
// feeding an out-of-process renderer.
func Snapshot(u *CompileUnit) ([]byte, error) {
	v, err := nodeValue(u)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}

// WriteSnapshot writes the JSON snapshot of u to w.
func WriteSnapshot(w io.Writer, u *CompileUnit) error {
	data, err := Snapshot(u)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func listValue(l *StmtList) ([]any, error) {
	if l == nil {
		return nil, nil
	}
	out := make([]any, 0, len(l.Stmts))
	for _, s := range l.Stmts {
		v, err := nodeValue(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func exprValues(exprs []Expr) ([]any, error) {
	out := make([]any, 0, len(exprs))
	for _, e := range exprs {
		v, err := nodeValue(e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func optValue(e Expr) (any, error) {
	if e == nil {
		return nil, nil
	}
	return nodeValue(e)
}

func typeRefValue(r *TypeRef) any {
	if r == nil {
		return nil
	}
	return typeRefString(r)
}

func paramValues(params []*Param) []any {
	out := make([]any, 0, len(params))
	for _, p := range params {
		out = append(out, map[string]any{"name": p.Name, "type": typeRefValue(p.Type)})
	}
	return out
}

func nodeValue(n Node) (any, error) {
	switch n := n.(type) {
	case *CompileUnit:
		nss := make([]any, 0, len(n.Namespaces))
		for _, ns := range n.Namespaces {
			v, err := nodeValue(ns)
			if err != nil {
				return nil, err
			}
			nss = append(nss, v)
		}
		return map[string]any{"kind": "unit", "namespaces": nss}, nil

	case *Namespace:
		imports := make([]any, 0, len(n.Imports))
		for _, imp := range n.Imports {
			imports = append(imports, map[string]any{"alias": imp.Alias, "namespace": imp.Namespace})
		}
		types := make([]any, 0, len(n.Types))
		for _, t := range n.Types {
			v, err := nodeValue(t)
			if err != nil {
				return nil, err
			}
			types = append(types, v)
		}
		return map[string]any{"kind": "namespace", "name": n.Name, "imports": imports, "types": types}, nil

	case *TypeDecl:
		members := make([]any, 0, len(n.Members))
		for _, m := range n.Members {
			v, err := nodeValue(m)
			if err != nil {
				return nil, err
			}
			members = append(members, v)
		}
		bases := make([]any, 0, len(n.Bases))
		for _, b := range n.Bases {
			bases = append(bases, typeRefValue(b))
		}
		return map[string]any{
			"kind": "type", "name": n.Name, "flags": flagsString(n.Flags),
			"bases": bases, "members": members,
		}, nil

	case *Method:
		body, err := listValue(n.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind": "method", "name": n.Name, "flags": flagsString(n.Flags),
			"params": paramValues(n.Params), "returns": typeRefValue(n.Returns), "body": body,
		}, nil

	case *Ctor:
		body, err := listValue(n.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind": "ctor", "flags": flagsString(n.Flags),
			"params": paramValues(n.Params), "body": body,
		}, nil

	case *Field:
		init, err := optValue(n.Init)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind": "field", "name": n.Name, "type": typeRefValue(n.Type),
			"flags": flagsString(n.Flags), "init": init,
		}, nil

	case *AssignStmt:
		lhs, err := nodeValue(n.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := nodeValue(n.Rhs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "assign", "lhs": lhs, "rhs": rhs}, nil

	case *ExprStmt:
		x, err := nodeValue(n.X)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "expr", "x": x}, nil

	case *IfStmt:
		cond, err := nodeValue(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := listValue(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := listValue(n.Else)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "if", "cond": cond, "then": then, "else": els}, nil

	case *ForeachStmt:
		seq, err := nodeValue(n.Seq)
		if err != nil {
			return nil, err
		}
		body, err := listValue(n.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind": "foreach", "local": n.Local, "type": typeRefValue(n.LocalType),
			"seq": seq, "body": body,
		}, nil

	case *WhileStmt:
		cond, err := nodeValue(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := listValue(n.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "while", "cond": cond, "body": body}, nil

	case *DoWhileStmt:
		cond, err := nodeValue(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := listValue(n.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "dowhile", "cond": cond, "body": body}, nil

	case *TryStmt:
		body, err := listValue(n.Body)
		if err != nil {
			return nil, err
		}
		catches := make([]any, 0, len(n.Catches))
		for _, c := range n.Catches {
			cbody, err := listValue(c.Body)
			if err != nil {
				return nil, err
			}
			catches = append(catches, map[string]any{
				"local": c.Local, "type": typeRefValue(c.Type), "body": cbody,
			})
		}
		fin, err := listValue(n.Finally)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "try", "body": body, "catches": catches, "finally": fin}, nil

	case *UsingStmt:
		init, err := nodeValue(n.Init)
		if err != nil {
			return nil, err
		}
		body, err := listValue(n.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "using", "local": n.Local, "init": init, "body": body}, nil

	case *ThrowStmt:
		x, err := optValue(n.X)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "throw", "x": x}, nil

	case *ReturnStmt:
		x, err := optValue(n.X)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "return", "x": x}, nil

	case *BreakStmt:
		return map[string]any{"kind": "break"}, nil

	case *ContinueStmt:
		return map[string]any{"kind": "continue"}, nil

	case *YieldStmt:
		x, err := optValue(n.X)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "yield", "x": x}, nil

	case *CommentStmt:
		return map[string]any{"kind": "comment", "text": n.Text}, nil

	case *Ident:
		return map[string]any{"kind": "ident", "name": n.Name}, nil

	case *IntLit:
		return map[string]any{"kind": "int", "value": n.Value}, nil

	case *StrLit:
		return map[string]any{"kind": "string", "value": n.Value}, nil

	case *BoolLit:
		return map[string]any{"kind": "bool", "value": n.Value}, nil

	case *NullLit:
		return map[string]any{"kind": "null"}, nil

	case *FieldAccess:
		target, err := nodeValue(n.Target)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "access", "target": target, "name": n.Name}, nil

	case *BinOp:
		left, err := nodeValue(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := nodeValue(n.Right)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "binop", "op": string(n.Op), "left": left, "right": right}, nil

	case *UnaryOp:
		x, err := nodeValue(n.X)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "unary", "op": string(n.Op), "x": x}, nil

	case *Call:
		callee, err := nodeValue(n.Callee)
		if err != nil {
			return nil, err
		}
		args, err := exprValues(n.Args)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "call", "callee": callee, "args": args}, nil

	case *Index:
		target, err := nodeValue(n.Target)
		if err != nil {
			return nil, err
		}
		args, err := exprValues(n.Args)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "index", "target": target, "args": args}, nil

	case *Lambda:
		body, err := nodeValue(n.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "lambda", "params": paramValues(n.Params), "body": body}, nil

	case *MethodRef:
		target, err := nodeValue(n.Target)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "methodref", "target": target, "name": n.Name}, nil

	case *TypeRefExpr:
		return map[string]any{"kind": "typeref", "type": typeRefValue(n.Ref)}, nil

	case *ListInit:
		elems, err := exprValues(n.Elems)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "listinit", "elem": typeRefValue(n.ElemType), "elems": elems}, nil

	default:
		return nil, fmt.Errorf("unknown node %T", n)
	}
}
