// Package hostinspect checks, via go/packages, that a target Go backend
// package actually exports the symbols an Emitter's generated code calls
// into, catching a dependency version mismatch before a generated
// program fails to build.
package hostinspect

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// Requirement names one symbol an Emitter backend depends on: a function,
// or "Type.Method" for a method.
type Requirement struct {
	PackagePath string
	Symbol      string
}

// GorgoniaRequirements lists every gorgonia.org/tensor symbol
// GorgoniaEmitter's generated code calls.
var GorgoniaRequirements = []Requirement{
	{PackagePath: "gorgonia.org/tensor", Symbol: "Outer"},
	{PackagePath: "gorgonia.org/tensor", Symbol: "Contract"},
	{PackagePath: "gorgonia.org/tensor", Symbol: "Add"},
	{PackagePath: "gorgonia.org/tensor", Symbol: "Sub"},
	{PackagePath: "gorgonia.org/tensor", Symbol: "Mul"},
	{PackagePath: "gorgonia.org/tensor", Symbol: "Div"},
	{PackagePath: "gorgonia.org/tensor", Symbol: "Stack"},
	{PackagePath: "gorgonia.org/tensor", Symbol: "Dense.SafeT"},
}

// Check loads every distinct package path in reqs and verifies each
// requirement resolves to an exported function or method. dir is the Go
// module directory to load from (the generated program's module, or tlc's
// own when checking against its vendored copy).
func Check(dir string, reqs []Requirement) error {
	byPkg := make(map[string][]Requirement)
	for _, r := range reqs {
		byPkg[r.PackagePath] = append(byPkg[r.PackagePath], r)
	}

	paths := make([]string, 0, len(byPkg))
	for p := range byPkg {
		paths = append(paths, p)
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, paths...)
	if err != nil {
		return fmt.Errorf("hostinspect: loading packages: %w", err)
	}

	loaded := make(map[string]*packages.Package, len(pkgs))
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return fmt.Errorf("hostinspect: %s: %s", pkg.PkgPath, e.Msg)
		}
		loaded[pkg.PkgPath] = pkg
	}

	for path, rs := range byPkg {
		pkg, ok := loaded[path]
		if !ok {
			return fmt.Errorf("hostinspect: package %q did not load", path)
		}
		for _, r := range rs {
			if err := resolve(pkg, r.Symbol); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve looks up a "Name" (package-level func/type) or "Type.Method"
// symbol in pkg's type-checked scope.
func resolve(pkg *packages.Package, symbol string) error {
	typeName, methodName := splitSymbol(symbol)

	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return fmt.Errorf("hostinspect: %s.%s not found", pkg.PkgPath, typeName)
	}
	if methodName == "" {
		return nil
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return fmt.Errorf("hostinspect: %s.%s is not a named type", pkg.PkgPath, typeName)
	}
	for i := 0; i < named.NumMethods(); i++ {
		if named.Method(i).Name() == methodName {
			return nil
		}
	}
	ptr := types.NewPointer(named)
	methodSet := types.NewMethodSet(ptr)
	for i := 0; i < methodSet.Len(); i++ {
		if methodSet.At(i).Obj().Name() == methodName {
			return nil
		}
	}
	return fmt.Errorf("hostinspect: %s.%s has no method %s", pkg.PkgPath, typeName, methodName)
}

func splitSymbol(symbol string) (typeName, methodName string) {
	for i := 0; i < len(symbol); i++ {
		if symbol[i] == '.' {
			return symbol[:i], symbol[i+1:]
		}
	}
	return symbol, ""
}
