package analyze

import (
	"go/types"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// Lookup errors.
var (
	ErrPackageNotFound = errors.New("package not found")
	ErrFuncNotFound    = errors.New("function not found")
)

// lookupMode loads only what a scope lookup needs.
const lookupMode = packages.NeedName | packages.NeedTypes

// LookupFunc checks that the package importPath declares an exported function
// (or function-typed variable) called name. Packages the checked package
// already imports are answered from its type information; others are loaded
// from p's directory, or the current directory when p has no type
// information.
func (p *Package) LookupFunc(importPath, name string) error {
	scope, err := p.importScope(importPath)
	if err != nil {
		return err
	}

	obj := scope.Lookup(name)
	if obj == nil || !obj.Exported() || !isFunc(obj) {
		return errors.Wrapf(ErrFuncNotFound, "%s.%s", importPath, name)
	}

	return nil
}

func (p *Package) importScope(importPath string) (*types.Scope, error) {
	cfg := &packages.Config{Mode: lookupMode}

	if p.Types != nil {
		for _, imp := range p.Types.Imports() {
			if imp.Path() == importPath {
				return imp.Scope(), nil
			}
		}

		cfg.Dir = p.Dir
	}

	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", importPath)
	}

	if len(pkgs) != 1 || len(pkgs[0].Errors) > 0 || pkgs[0].Types == nil {
		return nil, errors.Wrapf(ErrPackageNotFound, "%q", importPath)
	}

	return pkgs[0].Types.Scope(), nil
}

func isFunc(obj types.Object) bool {
	switch obj.(type) {
	case *types.Func:
		return true
	case *types.Var:
		_, ok := obj.Type().Underlying().(*types.Signature)
		return ok
	default:
		return false
	}
}
