// Package config holds the client settings. A Configuration is an explicit
// object built once at startup from a base settings document and an optional
// developer document layered on top of it, and handed to whatever needs it.
//
// Values are addressed by hierarchical paths such as ("graphics", "resolution")
// and read or written through the generic Get and Set helpers.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	SettingsFilename  = "client.settings.json"
	DeveloperFilename = "client.developer.json"
	ScoresFilename    = "client.scores.json"
)

var (
	ErrNotFound = errors.New("config: key not found")
	ErrInvalid  = errors.New("config: invalid document")
)

//go:embed defaults.json
var defaultSettings []byte

// Configuration is a tree of settings decoded from JSON or YAML documents.
// It is safe for concurrent use.
type Configuration struct {
	mu      sync.RWMutex
	root    map[string]any
	restart bool
}

// New returns a configuration holding only the built-in defaults.
func New() *Configuration {
	c := &Configuration{}
	c.Reset()
	return c
}

// Reset drops everything loaded so far and goes back to the defaults.
func (c *Configuration) Reset() {
	root, err := decodeDocument("defaults.json", defaultSettings)
	if err != nil {
		panic(fmt.Sprintf("config: broken defaults: %v", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.root = root
	c.restart = false
}

// Load merges the settings document and then the developer document over the
// defaults. Either document may be empty.
func (c *Configuration) Load(settings, developer []byte) error {
	return c.load(
		document{name: SettingsFilename, data: settings},
		document{name: DeveloperFilename, data: developer},
	)
}

// LoadFiles reads the settings file and the optional developer file. Files
// ending in .yaml or .yml are decoded as YAML, everything else as JSON. A
// missing developer file is not an error.
func (c *Configuration) LoadFiles(settingsPath, developerPath string) error {
	settings, err := os.ReadFile(settingsPath)
	if err != nil {
		return fmt.Errorf("config: read settings: %w", err)
	}

	docs := []document{{name: settingsPath, data: settings}}

	if developerPath != "" {
		developer, err := os.ReadFile(developerPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("config: read developer settings: %w", err)
		default:
			docs = append(docs, document{name: developerPath, data: developer})
		}
	}

	return c.load(docs...)
}

type document struct {
	name string
	data []byte
}

func (c *Configuration) load(docs ...document) error {
	decoded := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		if len(bytes.TrimSpace(doc.data)) == 0 {
			continue
		}
		tree, err := decodeDocument(doc.name, doc.data)
		if err != nil {
			return err
		}
		decoded = append(decoded, tree)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tree := range decoded {
		merge(c.root, tree)
	}
	return nil
}

func decodeDocument(name string, data []byte) (map[string]any, error) {
	var tree map[string]any

	if isYAML(name) {
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
		}
		// Round trip through JSON so numbers and nested maps have the same
		// representation regardless of the source format.
		normalized, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
		}
		data = normalized
	}

	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
	}
	if tree == nil {
		tree = make(map[string]any)
	}
	return tree, nil
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// merge copies src into dst. Objects are merged key by key, anything else in
// src replaces the value in dst.
func merge(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			merge(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
}

func (c *Configuration) lookup(path []string) (any, error) {
	var node any = c.root
	for i, key := range path {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(path[:i+1], "."))
		}
		node, ok = obj[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(path[:i+1], "."))
		}
	}
	return node, nil
}

// Get decodes the value at path into a T.
func Get[T any](c *Configuration, path ...string) (T, error) {
	var out T

	c.mu.RLock()
	node, err := c.lookup(path)
	var raw []byte
	if err == nil {
		raw, err = json.Marshal(node)
	}
	c.mu.RUnlock()
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("config: decode %s: %w", strings.Join(path, "."), err)
	}
	return out, nil
}

// GetOr is Get returning def when the path does not exist or cannot be decoded.
func GetOr[T any](c *Configuration, def T, path ...string) T {
	v, err := Get[T](c, path...)
	if err != nil {
		return def
	}
	return v
}

// Set stores value at path, creating intermediate objects as needed.
func Set[T any](c *Configuration, value T, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("config: set: empty path")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("config: encode %s: %w", strings.Join(path, "."), err)
	}
	var node any
	if err := json.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("config: encode %s: %w", strings.Join(path, "."), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	obj := c.root
	for _, key := range path[:len(path)-1] {
		next, ok := obj[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			obj[key] = next
		}
		obj = next
	}
	obj[path[len(path)-1]] = node
	return nil
}

// Serialize returns the whole tree as indented JSON.
func (c *Configuration) Serialize() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.MarshalIndent(c.root, "", "  ")
}

// Save writes the tree to path, as YAML when the extension asks for it.
func (c *Configuration) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		c.mu.RLock()
		data, err = yaml.Marshal(c.root)
		c.mu.RUnlock()
	} else {
		data, err = c.Serialize()
	}
	if err != nil {
		return fmt.Errorf("config: serialize: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
