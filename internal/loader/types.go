package loader

import (
	"go/token"

	"golang.org/x/tools/go/packages"
)

// Service loads type-checked Go packages for schema generation
type Service struct {
	dir             string
	buildTags       []string
	parseVendor     bool
	parseInternal   bool
	excludes        map[string]struct{}
	packagePrefix   []string
	parseDependency bool
	dependencyDepth int
	debug           Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// LoadResult contains the results of loading packages
type LoadResult struct {
	// Packages are the matched packages that passed the filters.
	Packages []*packages.Package
	// Dependencies are the import paths discovered below the packages,
	// present only when dependency parsing is enabled.
	Dependencies []string
	FileSet      *token.FileSet
}

// Option is a functional option for configuring Service
type Option func(*Service)

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
