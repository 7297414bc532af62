package preview

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Timtam/kk-browser/pkg/types"
)

// DefaultManifestPath returns the fixed location of the Native Browser
// Preview Library manifest for the current platform.
func DefaultManifestPath() string {
	if runtime.GOOS == "darwin" {
		return "/Users/Shared/Native Instruments/installed_products/Native Browser Preview Library.json"
	}
	return "C:/Users/Public/Documents/Native Instruments/installed_products/Native Browser Preview Library.json"
}

// Resolver maps presets to playable preview files.
type Resolver struct {
	// ManifestPath points at the preview-library manifest consulted as the
	// last fallback.
	ManifestPath string
}

// New returns a resolver using the platform's default manifest location.
func New() *Resolver {
	return &Resolver{ManifestPath: DefaultManifestPath()}
}

// Resolve finds the preview file for preset. The fallback chain is: the
// preset file itself when it is a wav that exists on disk, then an ogg in
// the .previews directory next to it, then the preview library rerooted
// through the product's UPID. Every candidate must exist on disk; ok is
// false when none does.
func (r *Resolver) Resolve(preset *types.Preset, product *types.Product) (path string, ok bool) {
	file := preset.FileName
	if file == "" {
		return "", false
	}

	if strings.EqualFold(filepath.Ext(file), ".wav") {
		if _, err := os.Stat(file); err == nil {
			return file, true
		}
	}

	base := filepath.Base(file)
	sibling := filepath.Join(filepath.Dir(file), ".previews", base+".ogg")
	if _, err := os.Stat(sibling); err == nil {
		return sibling, true
	}

	libDir, ok := r.libraryDir()
	if !ok || product == nil || product.UPID == "" {
		return "", false
	}
	rel, err := filepath.Rel(product.ContentDir, file)
	if err != nil {
		return "", false
	}
	rerooted := filepath.Join(libDir, "Samples", product.UPID, filepath.Dir(rel), ".previews", base+".ogg")
	if _, err := os.Stat(rerooted); err != nil {
		return "", false
	}
	return rerooted, true
}

// libraryDir reads the manifest and returns its ContentDir.
func (r *Resolver) libraryDir() (string, bool) {
	raw, err := os.ReadFile(r.ManifestPath)
	if err != nil {
		return "", false
	}
	var manifest struct {
		ContentDir string `json:"ContentDir"`
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		log.Printf("preview manifest %s: %v", r.ManifestPath, err)
		return "", false
	}
	return manifest.ContentDir, manifest.ContentDir != ""
}
