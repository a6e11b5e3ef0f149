package ports

import "componentdiff/internal/domain"

// DocumentStore defines the storage operations on component documents
type DocumentStore interface {
	// ListDocuments returns the *.xml files directly inside dir, sorted by name
	ListDocuments(dir string) ([]string, error)

	// ParseDocument loads a document and returns its root element
	ParseDocument(path string) (*domain.Node, error)

	// FirstInstance returns the first instance of componentType in document order.
	// It returns a NotFoundError when the document has none.
	FirstInstance(path string, componentType domain.ComponentType) (*domain.Node, error)

	// Instances returns every instance of componentType in document order
	Instances(path string, componentType domain.ComponentType) ([]*domain.Node, error)

	// ReplaceFirstInstance swaps the first instance for a deep copy of replacement,
	// creating "<path>.backup" once before saving. backupCreated reports whether
	// this call wrote the backup.
	ReplaceFirstInstance(path string, componentType domain.ComponentType, replacement *domain.Node) (backupCreated bool, err error)

	// LoadDefault returns the root element of a default document
	LoadDefault(path string) (*domain.Node, error)

	// SaveDefault writes instance as the root of a default document, overwriting it
	SaveDefault(path string, instance *domain.Node) error

	// ListDefaults returns the "*_default.xml" files in dir
	ListDefaults(dir string) ([]string, error)
}
