// Package project resolves sample references to filesystem paths. Project
// serialization (load/save) lives with the frontend; only path semantics
// belong to the engine.
package project

import (
	"os"
	"path/filepath"
)

// SampleRefKind distinguishes the two ways a clip can reference a sample
// file.
type SampleRefKind int

const (
	// DevRoot resolves relative to {devRoot}/samples/.
	DevRoot SampleRefKind = iota
	// ProjectRelative resolves relative to the project file's directory.
	ProjectRelative
)

// SampleRef is a typed reference to an audio sample, carrying enough
// context to resolve to an absolute path without ambiguity.
type SampleRef struct {
	Kind SampleRefKind
	Path string // relative path portion
}

func (r SampleRef) String() string {
	switch r.Kind {
	case DevRoot:
		return "dev_root:" + r.Path
	default:
		return "project:" + r.Path
	}
}

// PathContext resolves SampleRefs to absolute filesystem paths.
type PathContext struct {
	ProjectRoot string
	DevRoot     string // empty disables DevRoot resolution
}

// FromProjectPath builds a PathContext whose ProjectRoot is projectPath's
// parent directory.
func FromProjectPath(projectPath string) PathContext {
	return PathContext{ProjectRoot: filepath.Dir(projectPath)}
}

// WithDevRoot returns a copy of ctx with DevRoot set.
func (ctx PathContext) WithDevRoot(devRoot string) PathContext {
	ctx.DevRoot = devRoot
	return ctx
}

// Resolve maps ref to an absolute path, returning ok=false if the
// required root isn't configured or the resolved path doesn't exist.
func (ctx PathContext) Resolve(ref SampleRef) (string, bool) {
	switch ref.Kind {
	case DevRoot:
		if ctx.DevRoot == "" {
			return "", false
		}
		resolved := filepath.Join(ctx.DevRoot, "samples", ref.Path)
		if _, err := os.Stat(resolved); err != nil {
			return "", false
		}
		return resolved, true
	default:
		resolved := filepath.Join(ctx.ProjectRoot, ref.Path)
		if _, err := os.Stat(resolved); err != nil {
			return "", false
		}
		return resolved, true
	}
}

// ResolveSamplePath searches for a sample file the way the demo patterns
// and CLI sample flags do: the literal path if it exists, then
// {samplesRoot}/path, then {samplesRoot}/*/basename(path).
func ResolveSamplePath(samplesRoot, path string) (string, bool) {
	if _, err := os.Stat(path); err == nil {
		return path, true
	}

	joined := filepath.Join(samplesRoot, path)
	if _, err := os.Stat(joined); err == nil {
		return joined, true
	}

	entries, err := os.ReadDir(samplesRoot)
	if err != nil {
		return "", false
	}
	base := filepath.Base(path)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(samplesRoot, entry.Name(), base)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
