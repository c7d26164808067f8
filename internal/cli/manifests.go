package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tobheim/patchbay/pkg/instrument"
)

// LoadManifests reads every instrument manifest (*.yaml, *.yml) in dir,
// keyed by instrument name. An empty dir yields no manifests, which leaves
// routing validation on the platform's full port exposure.
func LoadManifests(dir string) (map[string]instrument.Manifest, error) {
	if dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read manifest dir: %w", err)
	}

	manifests := make(map[string]instrument.Manifest)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		m, err := instrument.LoadManifest(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", entry.Name(), err)
		}
		manifests[m.Name] = m
	}
	return manifests, nil
}
