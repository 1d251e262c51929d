package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathContextResolveDevRoot(t *testing.T) {
	devRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(devRoot, "samples", "cr78"), 0o755))
	sample := filepath.Join(devRoot, "samples", "cr78", "kick.wav")
	require.NoError(t, os.WriteFile(sample, []byte("fake wav"), 0o644))

	ctx := PathContext{ProjectRoot: t.TempDir(), DevRoot: devRoot}
	resolved, ok := ctx.Resolve(SampleRef{Kind: DevRoot, Path: "cr78/kick.wav"})
	require.True(t, ok)
	assert.Equal(t, sample, resolved)
}

func TestPathContextResolveMissingReturnsFalse(t *testing.T) {
	ctx := PathContext{ProjectRoot: t.TempDir(), DevRoot: t.TempDir()}
	_, ok := ctx.Resolve(SampleRef{Kind: DevRoot, Path: "cr78/missing.wav"})
	assert.False(t, ok)
}

func TestPathContextResolveProjectRelative(t *testing.T) {
	projectRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(projectRoot, "audio"), 0o755))
	sample := filepath.Join(projectRoot, "audio", "local.wav")
	require.NoError(t, os.WriteFile(sample, []byte("fake wav"), 0o644))

	ctx := PathContext{ProjectRoot: projectRoot}
	resolved, ok := ctx.Resolve(SampleRef{Kind: ProjectRelative, Path: "audio/local.wav"})
	require.True(t, ok)
	assert.Equal(t, sample, resolved)
}

func TestFromProjectPath(t *testing.T) {
	ctx := FromProjectPath("/home/user/projects/demo.dawproj")
	assert.Equal(t, "/home/user/projects", ctx.ProjectRoot)
}

func TestResolveSamplePathLiteral(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "kick.wav")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	resolved, ok := ResolveSamplePath(dir, file)
	require.True(t, ok)
	assert.Equal(t, file, resolved)
}

func TestResolveSamplePathUnderRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "kick.wav"), []byte("x"), 0o644))

	resolved, ok := ResolveSamplePath(root, "kick.wav")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "kick.wav"), resolved)
}

func TestResolveSamplePathInSubdirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cr78"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cr78", "hihat.wav"), []byte("x"), 0o644))

	resolved, ok := ResolveSamplePath(root, "hihat.wav")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "cr78", "hihat.wav"), resolved)
}

func TestResolveSamplePathNotFound(t *testing.T) {
	root := t.TempDir()
	_, ok := ResolveSamplePath(root, "missing.wav")
	assert.False(t, ok)
}
