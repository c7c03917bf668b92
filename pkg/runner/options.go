// Package runner discovers assembly sources and lexes them in parallel.
package runner

import "github.com/yaklabco/asmlex/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the file extensions treated as source, compared
	// case-insensitively. Defaults to config.DefaultExtensions().
	Extensions []string

	// DetectLanguage also accepts files without a listed extension whose
	// content is detected as assembly.
	DetectLanguage bool

	// IncludeGlobs, when set, restrict discovery to matching paths.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration passed to the pipeline.
	Config *config.Config
}

// OptionsFromConfig seeds Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg != nil {
		opts.Extensions = cfg.SourceExtensions()
		opts.DetectLanguage = cfg.DetectLanguage
		opts.ExcludeGlobs = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// DefaultExtensions returns the default set of source file extensions.
func DefaultExtensions() []string {
	return config.DefaultExtensions()
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
