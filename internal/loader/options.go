package loader

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		dir:             ".",
		parseVendor:     false,
		parseInternal:   false,
		excludes:        make(map[string]struct{}),
		packagePrefix:   []string{},
		parseDependency: false,
		dependencyDepth: 1,
		debug:           &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithDir sets the directory patterns are resolved against
func WithDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithBuildTags sets the build tags used when loading
func WithBuildTags(tags []string) Option {
	return func(s *Service) {
		s.buildTags = tags
	}
}

// WithParseVendor sets whether to parse vendor directories
func WithParseVendor(parse bool) Option {
	return func(s *Service) {
		s.parseVendor = parse
	}
}

// WithParseInternal sets whether dependency discovery descends into
// standard library packages
func WithParseInternal(parse bool) Option {
	return func(s *Service) {
		s.parseInternal = parse
	}
}

// WithExcludes sets directory exclusion patterns
func WithExcludes(excludes map[string]struct{}) Option {
	return func(s *Service) {
		s.excludes = excludes
	}
}

// WithPackagePrefix sets package path prefixes to filter
func WithPackagePrefix(prefixes []string) Option {
	return func(s *Service) {
		s.packagePrefix = prefixes
	}
}

// WithParseDependency sets whether imported packages are loaded with
// syntax so their documentation is available
func WithParseDependency(parse bool) Option {
	return func(s *Service) {
		s.parseDependency = parse
	}
}

// WithDependencyDepth sets how deep dependency discovery descends
func WithDependencyDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.dependencyDepth = depth
		}
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}
