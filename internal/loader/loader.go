package loader

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KyleBanks/depth"
	"golang.org/x/tools/go/packages"
)

// ErrNoPackages is returned when no package survives the filters.
var ErrNoPackages = errors.New("no packages to load")

// Load loads the packages matched by patterns with full type information
// and syntax. Packages outside the configured prefixes, vendored packages
// and packages in excluded directories are dropped.
func (s *Service) Load(ctx context.Context, patterns ...string) (*LoadResult, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	mode := packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedTypes |
		packages.NeedTypesSizes | packages.NeedSyntax | packages.NeedTypesInfo
	if s.parseDependency {
		mode |= packages.NeedDeps
	}

	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    mode,
		Dir:     s.dir,
		Fset:    fset,
	}
	if len(s.buildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(s.buildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	result := &LoadResult{FileSet: fset}
	for _, pkg := range pkgs {
		if s.skipPackage(pkg) {
			s.debug.Printf("loader: skipping package %s", pkg.PkgPath)
			continue
		}
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s: %w", pkg.PkgPath, pkg.Errors[0])
		}
		result.Packages = append(result.Packages, pkg)
	}
	if len(result.Packages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackages, strings.Join(patterns, " "))
	}

	if s.parseDependency {
		deps, err := s.Dependencies(result.Packages)
		if err != nil {
			return nil, err
		}
		result.Dependencies = deps
	}

	return result, nil
}

// Dependencies lists the import paths below pkgs up to the configured
// depth, sorted.
func (s *Service) Dependencies(pkgs []*packages.Package) ([]string, error) {
	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		seen[pkg.PkgPath] = struct{}{}
	}

	var out []string
	for _, pkg := range pkgs {
		var t depth.Tree
		t.ResolveInternal = s.parseInternal
		t.MaxDepth = s.dependencyDepth

		if err := t.Resolve(pkg.PkgPath); err != nil {
			return nil, fmt.Errorf("pkg %s cannot find all dependencies, %s", pkg.PkgPath, err)
		}
		out = s.collectDependencies(t.Root.Deps, seen, out)
	}

	sort.Strings(out)
	return out, nil
}

func (s *Service) collectDependencies(deps []depth.Pkg, seen map[string]struct{}, out []string) []string {
	for i := range deps {
		dep := &deps[i]
		if !dep.Resolved || (dep.Internal && !s.parseInternal) {
			continue
		}

		path := dep.Name
		if dep.Raw != nil {
			path = dep.Raw.ImportPath
		}
		if path == "C" || s.skipPackageByPrefix(path) {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}

		out = append(out, path)
		out = s.collectDependencies(dep.Deps, seen, out)
	}
	return out
}

// skipPackage checks if a loaded package should be dropped
func (s *Service) skipPackage(pkg *packages.Package) bool {
	if s.skipPackageByPrefix(pkg.PkgPath) {
		return true
	}
	if !s.parseVendor && strings.Contains(pkg.PkgPath, "/vendor/") {
		return true
	}
	for _, file := range pkg.GoFiles {
		if s.shouldSkipDir(filepath.Dir(file)) {
			return true
		}
	}
	return false
}

// shouldSkipDir checks if a package directory is excluded. Docs and
// hidden directories are always skipped; excludes match the directory and
// everything below it.
func (s *Service) shouldSkipDir(dir string) bool {
	name := filepath.Base(dir)
	if name == "docs" || (len(name) > 1 && name[0] == '.' && name != "..") {
		return true
	}

	for exclude := range s.excludes {
		abs, err := filepath.Abs(filepath.Join(s.dir, exclude))
		if filepath.IsAbs(exclude) {
			abs, err = filepath.Clean(exclude), nil
		}
		if err != nil {
			continue
		}
		if dir == abs || strings.HasPrefix(dir, abs+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// skipPackageByPrefix checks if a package should be skipped based on prefix
func (s *Service) skipPackageByPrefix(pkgpath string) bool {
	if len(s.packagePrefix) == 0 {
		return false
	}
	for _, prefix := range s.packagePrefix {
		if strings.HasPrefix(pkgpath, prefix) {
			return false
		}
	}
	return true
}
