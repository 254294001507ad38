package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hookgate/hookgate/internal/classify"
)

// Manifest is the on-disk description of one validation run: the hooks to
// execute and the input document every hook receives on stdin.
type Manifest struct {
	Hooks []classify.RawHook `json:"hooks" yaml:"hooks"`
	Data  map[string]any     `json:"data" yaml:"data"`
}

// ReadManifest loads a manifest from the given path. The path "-" reads
// JSON from stdin. File manifests are decoded as YAML when the extension
// is .yaml or .yml, JSON otherwise.
func ReadManifest(path string) (*Manifest, error) {
	if path == "-" {
		return readManifestFrom(os.Stdin, false)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	return readManifestFrom(f, ext == ".yaml" || ext == ".yml")
}

func readManifestFrom(r io.Reader, isYAML bool) (*Manifest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m := &Manifest{}
	if isYAML {
		if err := yaml.Unmarshal(raw, m); err != nil {
			return nil, fmt.Errorf("parsing manifest YAML: %w", err)
		}
	} else {
		if err := json.Unmarshal(raw, m); err != nil {
			return nil, fmt.Errorf("parsing manifest JSON: %w", err)
		}
	}
	return m, nil
}
