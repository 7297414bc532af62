package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timtam/kk-browser/pkg/types"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestResolveOwnWav(t *testing.T) {
	dir := t.TempDir()
	wav := filepath.Join(dir, "Kick 01.wav")
	writeFile(t, wav)

	r := &Resolver{}
	got, ok := r.Resolve(&types.Preset{FileName: wav}, nil)
	require.True(t, ok)
	assert.Equal(t, wav, got)
}

func TestResolveWavMissingOnDisk(t *testing.T) {
	r := &Resolver{}
	_, ok := r.Resolve(&types.Preset{FileName: filepath.Join(t.TempDir(), "gone.wav")}, nil)
	assert.False(t, ok)
}

func TestResolveSiblingOgg(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Pluck Lead.nksf")
	ogg := filepath.Join(dir, ".previews", "Pluck Lead.nksf.ogg")
	writeFile(t, file)
	writeFile(t, ogg)

	r := &Resolver{}
	got, ok := r.Resolve(&types.Preset{FileName: file}, nil)
	require.True(t, ok)
	assert.Equal(t, ogg, got)
}

func TestResolveThroughLibrary(t *testing.T) {
	dir := t.TempDir()
	libRoot := filepath.Join(dir, "previews")
	manifest := filepath.Join(dir, "library.json")
	require.NoError(t, os.WriteFile(manifest,
		[]byte(fmt.Sprintf(`{"ContentDir":%q}`, libRoot)), 0o644))

	contentDir := filepath.Join(dir, "content")
	file := filepath.Join(contentDir, "Presets", "Warm Keys.nksf")
	want := filepath.Join(libRoot, "Samples", "MSV", "Presets", ".previews", "Warm Keys.nksf.ogg")
	writeFile(t, want)

	r := &Resolver{ManifestPath: manifest}
	got, ok := r.Resolve(
		&types.Preset{FileName: file},
		&types.Product{ContentDir: contentDir, UPID: "MSV"},
	)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestResolveLibraryCandidateMissing(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "library.json")
	require.NoError(t, os.WriteFile(manifest,
		[]byte(fmt.Sprintf(`{"ContentDir":%q}`, filepath.Join(dir, "previews"))), 0o644))

	contentDir := filepath.Join(dir, "content")
	r := &Resolver{ManifestPath: manifest}
	_, ok := r.Resolve(
		&types.Preset{FileName: filepath.Join(contentDir, "Presets", "Warm Keys.nksf")},
		&types.Product{ContentDir: contentDir, UPID: "MSV"},
	)
	assert.False(t, ok)
}

func TestResolveNoUPID(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "library.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"ContentDir":"/previews/root"}`), 0o644))

	r := &Resolver{ManifestPath: manifest}
	_, ok := r.Resolve(
		&types.Preset{FileName: filepath.Join(dir, "a.nksf")},
		&types.Product{ContentDir: dir},
	)
	assert.False(t, ok)
}

func TestResolveNoManifest(t *testing.T) {
	r := &Resolver{ManifestPath: filepath.Join(t.TempDir(), "missing.json")}
	_, ok := r.Resolve(
		&types.Preset{FileName: "/somewhere/a.nksf"},
		&types.Product{ContentDir: "/somewhere", UPID: "MSV"},
	)
	assert.False(t, ok)
}

func TestResolveBadManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "library.json")
	require.NoError(t, os.WriteFile(manifest, []byte("not json"), 0o644))

	r := &Resolver{ManifestPath: manifest}
	_, ok := r.Resolve(
		&types.Preset{FileName: filepath.Join(dir, "a.nksf")},
		&types.Product{ContentDir: dir, UPID: "MSV"},
	)
	assert.False(t, ok)
}
