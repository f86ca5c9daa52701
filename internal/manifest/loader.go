// Package manifest loads graft project trees from disk: unit.yaml files
// under units/ and a module.yaml hierarchy under modules/. Files are parsed
// as loose YAML and decoded strictly with mapstructure, so unknown keys are
// reported instead of silently dropped.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	// UnitFile is the per-directory unit declaration.
	UnitFile = "unit.yaml"
	// ModuleFile is the per-directory module declaration.
	ModuleFile = "module.yaml"

	unitsDir   = "units"
	modulesDir = "modules"
)

// UnitDir is one loaded unit directory.
type UnitDir struct {
	// Dir is the directory path relative to the project root.
	Dir      string
	Manifest UnitManifest
}

// ModuleDir is one loaded module directory with its subdirectory hierarchy.
type ModuleDir struct {
	// Dir is the directory path relative to the project root.
	Dir      string
	Name     string // directory base name, which must match Manifest.Module
	Manifest ModuleManifest
	Children []*ModuleDir
}

// Tree is a fully loaded project: every unit declaration plus the module
// hierarchy, with a content digest for caching.
type Tree struct {
	Root    string
	Units   []UnitDir
	Modules *ModuleDir // nil when the project declares no modules
	digest  string
}

// Digest returns a stable hash over every manifest's path and content.
// Identical trees hash identically, so lint results can be cached by digest.
func (t *Tree) Digest() string { return t.digest }

// Load reads a project tree from root.
func Load(root string) (*Tree, error) {
	tree := &Tree{Root: root}
	hasher := sha256.New()

	unitRoot := filepath.Join(root, unitsDir)
	if _, err := os.Stat(unitRoot); err == nil {
		err := filepath.WalkDir(unitRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || d.Name() != UnitFile {
				return nil
			}

			var m UnitManifest
			raw, err := decodeYAML(path, &m)
			if err != nil {
				return err
			}

			rel, _ := filepath.Rel(root, filepath.Dir(path))
			tree.Units = append(tree.Units, UnitDir{Dir: rel, Manifest: m})
			fmt.Fprintf(hasher, "%s\n", rel)
			hasher.Write(raw)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("loading units: %w", err)
		}
	}

	sort.Slice(tree.Units, func(i, j int) bool { return tree.Units[i].Dir < tree.Units[j].Dir })

	moduleRoot := filepath.Join(root, modulesDir)
	if _, err := os.Stat(filepath.Join(moduleRoot, ModuleFile)); err == nil {
		mod, err := loadModuleDir(root, moduleRoot, hasher)
		if err != nil {
			return nil, fmt.Errorf("loading modules: %w", err)
		}
		tree.Modules = mod
	}

	tree.digest = hex.EncodeToString(hasher.Sum(nil))
	return tree, nil
}

type hashWriter interface {
	Write(p []byte) (int, error)
}

func loadModuleDir(root, dir string, hasher hashWriter) (*ModuleDir, error) {
	path := filepath.Join(dir, ModuleFile)

	var m ModuleManifest
	raw, err := decodeYAML(path, &m)
	if err != nil {
		return nil, err
	}

	rel, _ := filepath.Rel(root, dir)
	md := &ModuleDir{Dir: rel, Name: filepath.Base(dir), Manifest: m}
	fmt.Fprintf(hasher, "%s\n", rel)
	hasher.Write(raw)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	// Deterministic child order; os.ReadDir already sorts by name.
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		childFile := filepath.Join(dir, entry.Name(), ModuleFile)
		if _, err := os.Stat(childFile); err != nil {
			continue // plain subdirectory, not a module
		}
		child, err := loadModuleDir(root, filepath.Join(dir, entry.Name()), hasher)
		if err != nil {
			return nil, err
		}
		md.Children = append(md.Children, child)
	}

	return md, nil
}

// decodeYAML parses a manifest file loosely and decodes it strictly into out.
// It returns the raw bytes for digesting.
func decodeYAML(path string, out any) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var loose map[string]any
	if err := yaml.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true, // typos in manifest keys are errors, not noise
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(loose); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}
