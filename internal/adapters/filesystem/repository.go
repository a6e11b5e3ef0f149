package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

const indentSpaces = 2

// Repository implements ports.DocumentStore on XML files
type Repository struct{}

// Ensure Repository implements DocumentStore
var _ ports.DocumentStore = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository() *Repository {
	return &Repository{}
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// ListDocuments returns the *.xml files directly inside dir, sorted by name
func (r *Repository) ListDocuments(dir string) ([]string, error) {
	dir = ExpandHome(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsDocumentFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

// ParseDocument loads a document and returns its root element
func (r *Repository) ParseDocument(path string) (*domain.Node, error) {
	doc, err := readDocument(path, "document")
	if err != nil {
		return nil, err
	}
	return toNode(doc.Root()), nil
}

// FirstInstance returns the first instance of componentType in document order
func (r *Repository) FirstInstance(path string, componentType domain.ComponentType) (*domain.Node, error) {
	doc, err := readDocument(path, "document")
	if err != nil {
		return nil, err
	}

	el := findFirst(doc.Root(), string(componentType))
	if el == nil {
		return nil, componentNotFound(path, componentType)
	}
	return toNode(el), nil
}

// Instances returns every instance of componentType in document order
func (r *Repository) Instances(path string, componentType domain.ComponentType) ([]*domain.Node, error) {
	doc, err := readDocument(path, "document")
	if err != nil {
		return nil, err
	}

	var nodes []*domain.Node
	for _, el := range findAll(doc.Root(), string(componentType)) {
		nodes = append(nodes, toNode(el))
	}
	return nodes, nil
}

// ReplaceFirstInstance swaps the first instance of componentType for a copy of replacement.
//
// The original bytes are written to "<path>.backup" unless that file already
// exists; an existing backup is never overwritten. The document is then saved
// indented through a temp file and a rename.
func (r *Repository) ReplaceFirstInstance(path string, componentType domain.ComponentType, replacement *domain.Node) (bool, error) {
	if replacement == nil {
		return false, fmt.Errorf("no replacement for %s", componentType)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, &domain.NotFoundError{What: "document", Path: path}
		}
		return false, fmt.Errorf("failed to read document: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(original); err != nil {
		return false, &domain.ParseError{Path: path, Err: err}
	}
	if doc.Root() == nil {
		return false, &domain.ParseError{Path: path, Err: errors.New("no root element")}
	}

	target := findFirst(doc.Root(), string(componentType))
	if target == nil {
		return false, componentNotFound(path, componentType)
	}

	el := fromNode(replacement)
	el.Space = target.Space
	el.Tag = string(componentType)

	parent := target.Parent()
	idx := target.Index()
	parent.RemoveChildAt(idx)
	parent.InsertChildAt(idx, el)

	created, err := createBackup(path, original)
	if err != nil {
		return false, err
	}

	doc.Indent(indentSpaces)
	if err := writeDocument(path, doc); err != nil {
		return created, err
	}
	return created, nil
}

// LoadDefault returns the root element of a default document
func (r *Repository) LoadDefault(path string) (*domain.Node, error) {
	doc, err := readDocument(ExpandHome(path), "default document")
	if err != nil {
		return nil, err
	}
	return toNode(doc.Root()), nil
}

// SaveDefault writes instance as the root of a default document, overwriting it
func (r *Repository) SaveDefault(path string, instance *domain.Node) error {
	if instance == nil {
		return fmt.Errorf("no default instance to save")
	}
	path = ExpandHome(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create defaults directory: %w", err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.SetRoot(fromNode(instance))
	doc.Indent(indentSpaces)

	return writeDocument(path, doc)
}

// ListDefaults returns the "*_default.xml" files in dir.
// A missing directory yields an empty list.
func (r *Repository) ListDefaults(dir string) ([]string, error) {
	dir = ExpandHome(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read defaults directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := domain.TypeFromDefaultFile(entry.Name()); ok {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// readDocument parses path; what names the document in NotFoundError
func readDocument(path, what string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{What: what, Path: path}
		}
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	if doc.Root() == nil {
		return nil, &domain.ParseError{Path: path, Err: errors.New("no root element")}
	}
	return doc, nil
}

func componentNotFound(path string, componentType domain.ComponentType) error {
	return &domain.NotFoundError{What: fmt.Sprintf("%s component", componentType), Path: path}
}

// createBackup writes data to the backup path only if nothing is there yet
func createBackup(path string, data []byte) (bool, error) {
	backupPath := domain.BackupPath(path)

	f, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create backup: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return true, fmt.Errorf("failed to write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return true, fmt.Errorf("failed to write backup: %w", err)
	}
	return true, nil
}

// writeDocument saves doc next to path and renames it into place
func writeDocument(path string, doc *etree.Document) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := doc.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}
