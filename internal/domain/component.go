package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// ComponentType names a category of configuration subtree (e.g. "rates", "wing")
type ComponentType string

const (
	TypeWing             ComponentType = "wing"
	TypeRates            ComponentType = "rates"
	TypeGougeCheck       ComponentType = "gouge_check"
	TypePattern          ComponentType = "pattern"
	TypeTool             ComponentType = "tool"
	TypeFeedRateAdvanced ComponentType = "feed_rate_advanced"
	TypeMachSurf         ComponentType = "mach_surf"
	TypeLink             ComponentType = "link"
)

// KnownTypes lists the component types found in CAM script files, in display order
var KnownTypes = []ComponentType{
	TypeWing,
	TypeRates,
	TypeGougeCheck,
	TypePattern,
	TypeTool,
	TypeFeedRateAdvanced,
	TypeMachSurf,
	TypeLink,
}

// SelectionThreshold is the similarity below which a result is pre-selected for batch apply
const SelectionThreshold = 90.0

const (
	// DefaultFileSuffix is appended to the component type to name its default document
	DefaultFileSuffix = "_default.xml"
	// BackupSuffix is appended to a target path to name its one-time backup
	BackupSuffix = ".backup"
)

// Element names: a letter or underscore, then letters, digits, '-', '_' or '.'
var elementNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

// IsKnown reports whether t is one of KnownTypes
func (t ComponentType) IsKnown() bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// IsValid reports whether t can name an XML element
func (t ComponentType) IsValid() bool {
	return elementNameRegex.MatchString(string(t))
}

// String returns the type name
func (t ComponentType) String() string {
	return string(t)
}

// DefaultFileName returns "<type>_default.xml"
func DefaultFileName(t ComponentType) string {
	return string(t) + DefaultFileSuffix
}

// DefaultPath returns the default document path for t inside defaultsDir
func DefaultPath(defaultsDir string, t ComponentType) string {
	return filepath.Join(defaultsDir, DefaultFileName(t))
}

// TypeFromDefaultFile extracts the component type from a default document file name
func TypeFromDefaultFile(path string) (ComponentType, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, DefaultFileSuffix) || len(base) == len(DefaultFileSuffix) {
		return "", false
	}
	return ComponentType(strings.TrimSuffix(base, DefaultFileSuffix)), true
}

// BackupPath returns "<path>.backup"
func BackupPath(path string) string {
	return path + BackupSuffix
}

// IsDocumentFile reports whether name looks like a corpus document (*.xml, any case)
func IsDocumentFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xml")
}
