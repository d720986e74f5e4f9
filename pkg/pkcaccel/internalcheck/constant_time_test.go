package internalcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

func TestNoVariableTimeByteComparison(t *testing.T) {
	pkgs := loadModule(t, packages.NeedSyntax|packages.NeedTypes|packages.NeedTypesInfo|packages.NeedFiles|packages.NeedName)

	var findings []string
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				switch n := n.(type) {
				case *ast.BinaryExpr:
					if n.Op != token.EQL && n.Op != token.NEQ {
						return true
					}
					if isByteSlice(pkg.TypesInfo.TypeOf(n.X)) && isByteSlice(pkg.TypesInfo.TypeOf(n.Y)) {
						findings = append(findings, fmt.Sprintf("%s: == on byte slices", pkg.Fset.Position(n.Pos())))
					}
				case *ast.CallExpr:
					if isCall(pkg, n, "bytes", "Equal") {
						findings = append(findings, fmt.Sprintf("%s: bytes.Equal", pkg.Fset.Position(n.Pos())))
					}
				}
				return true
			})
		}
	}
	if len(findings) > 0 {
		t.Fatalf("use crypto/subtle to compare buffers:\n%s", strings.Join(findings, "\n"))
	}
}

func isCall(pkg *packages.Package, call *ast.CallExpr, pkgPath, name string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	obj := pkg.TypesInfo.Uses[sel.Sel]
	return obj != nil && obj.Pkg() != nil && obj.Pkg().Path() == pkgPath && obj.Name() == name
}

func isByteSlice(typ types.Type) bool {
	if typ == nil {
		return false
	}
	switch tt := typ.Underlying().(type) {
	case *types.Slice:
		return isByte(tt.Elem())
	case *types.Array:
		return isByte(tt.Elem())
	case *types.Pointer:
		return isByteSlice(tt.Elem())
	}
	return false
}

func isByte(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Byte
}
