package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Extensions lists the schema file extensions the store reads, in lookup order.
// Schemas are always written with the first one.
var Extensions = []string{".yaml", ".yml", ".json"}

// Store implements ports.SchemaStore using the local filesystem.
// It stores one schema per YAML file in a configured directory and also
// reads hand-written .yml and .json schema files placed there.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".conform/schemas".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".conform", "schemas")
	}
	return &Store{BasePath: basePath}
}

// Put persists the schema to a YAML file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Put(ctx context.Context, name string, node *schema.Node) error {
	if err := domain.ValidateSchemaName(name); err != nil {
		return err
	}
	if node == nil {
		node = schema.Fields()
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure schema directory: %w", err)
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	// 1. Create Temp File
	// Same directory so the rename stays on one filesystem. The leading dot
	// keeps it out of List.
	tmpFile, err := os.CreateTemp(s.BasePath, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // No-op once renamed
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 5. Drop other spellings of the same schema so Get sees the new one
	for _, ext := range Extensions[1:] {
		if err := os.Remove(s.path(name, ext)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale schema file: %w", err)
		}
	}

	// 6. Atomic Rename
	// On Windows, os.Rename fails if dest exists. We must remove it first.
	destPath := s.path(name, Extensions[0])
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing schema file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to schema file: %w", err)
	}
	return nil
}

// Get reads and decodes the schema file for name.
func (s *Store) Get(ctx context.Context, name string) (*schema.Node, error) {
	if err := domain.ValidateSchemaName(name); err != nil {
		return nil, err
	}

	for _, ext := range Extensions {
		path := s.path(name, ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		node, err := schema.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode schema file %s: %w", path, err)
		}
		return node, nil
	}
	return nil, domain.ErrSchemaNotFound
}

// Delete removes every file stored for name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := domain.ValidateSchemaName(name); err != nil {
		return err
	}

	var errs []error
	for _, ext := range Extensions {
		if err := os.Remove(s.path(name, ext)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to delete schema file: %w", errors.Join(errs...))
	}
	return nil
}

// List returns the names of all schema files in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isSchemaFile(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if domain.ValidateSchemaName(name) != nil || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) path(name, ext string) string {
	return filepath.Join(s.BasePath, name+ext)
}

func isSchemaFile(fileName string) bool {
	ext := filepath.Ext(fileName)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
