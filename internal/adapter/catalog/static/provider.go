package staticcatalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"respawn/internal/domain/player"
)

var ErrInvalidCatalogPath = errors.New("invalid catalog filepath")

type file struct {
	Objectives []player.Objective `yaml:"objectives"`
}

// Provider loads the objective catalog from a YAML file under Root. An empty
// Name serves the built-in catalog.
type Provider struct {
	Root string
	Name string
}

func (p Provider) Load(_ context.Context) (player.Catalog, error) {
	if strings.TrimSpace(p.Name) == "" {
		return player.DefaultCatalog(), nil
	}
	path, err := secureJoin(p.Root, p.Name)
	if err != nil {
		return player.Catalog{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return player.Catalog{}, err
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog document and validates it. Unknown keys are
// rejected.
func Parse(raw []byte) (player.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return player.Catalog{}, fmt.Errorf("%w: empty document", player.ErrInvalidCatalog)
		}
		return player.Catalog{}, fmt.Errorf("%w: %v", player.ErrInvalidCatalog, err)
	}
	if len(f.Objectives) == 0 {
		return player.Catalog{}, fmt.Errorf("%w: no objectives", player.ErrInvalidCatalog)
	}
	return player.NewCatalog(f.Objectives...)
}

// Marshal renders c in the same layout Parse reads.
func Marshal(c player.Catalog) ([]byte, error) {
	return yaml.Marshal(file{Objectives: c.Entries()})
}

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ErrInvalidCatalogPath
	}
	if filepath.IsAbs(rel) {
		if root == "" {
			return filepath.Clean(rel), nil
		}
		return "", ErrInvalidCatalogPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if target != rootAbs && !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidCatalogPath
	}
	return target, nil
}
