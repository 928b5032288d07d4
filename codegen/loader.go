package codegen

import (
	stderrors "errors"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/wippyai/zvalue/errors"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax

// Load resolves the package patterns relative to dir and collects the
// derived types of each matched package. A package with no derived types
// is returned with an empty Types list.
func Load(dir string, patterns ...string) ([]*Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.ParseFailed("packages", err)
	}
	if len(pkgs) == 0 {
		return nil, errors.NotFound(errors.PhaseParse, "package", dir)
	}

	var out []*Package
	var errs []error
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			errs = append(errs, errors.ParseFailed(p.PkgPath, p.Errors[0]))
			continue
		}

		pkg, err := Collect(p.Fset, p.Syntax)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pkg.Name = p.Name
		pkg.Path = p.PkgPath
		if len(p.GoFiles) > 0 {
			pkg.Dir = filepath.Dir(p.GoFiles[0])
		}
		out = append(out, pkg)

		Logger().Debug("loaded package",
			zap.String("path", pkg.Path),
			zap.Int("types", len(pkg.Types)))
	}

	if len(errs) > 0 {
		return out, stderrors.Join(errs...)
	}
	return out, nil
}
