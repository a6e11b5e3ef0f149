package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"componentdiff/internal/domain"
)

const scriptDoc = `<?xml version="1.0" encoding="utf-8"?>
<script>
  <header><name>job 42</name></header>
  <operation>
    <rates>
      <feedrate>100</feedrate>
      <spindle>
        <speed>5000</speed>
      </spindle>
    </rates>
  </operation>
  <operation>
    <rates>
      <feedrate>300</feedrate>
    </rates>
  </operation>
  <footer>end</footer>
</script>
`

func setupTestCorpus(t *testing.T) (string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "componentdiff-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestListDocuments_FiltersAndSorts(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	writeFile(t, filepath.Join(dir, "b.xml"), scriptDoc)
	writeFile(t, filepath.Join(dir, "a.XML"), scriptDoc)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, "c.xml.backup"), scriptDoc)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xml"), 0755))

	repo := NewRepository()
	paths, err := repo.ListDocuments(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.XML"),
		filepath.Join(dir, "b.xml"),
	}, paths)
}

func TestListDocuments_MissingDir(t *testing.T) {
	repo := NewRepository()
	_, err := repo.ListDocuments(filepath.Join(os.TempDir(), "componentdiff-does-not-exist"))
	assert.Error(t, err)
}

func TestFirstInstance_DocumentOrder(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	path := filepath.Join(dir, "job.xml")
	writeFile(t, path, scriptDoc)

	repo := NewRepository()
	inst, err := repo.FirstInstance(path, domain.TypeRates)
	require.NoError(t, err)

	flat := domain.Flatten(inst)
	assert.Equal(t, []string{"rates/feedrate", "rates/spindle/speed"}, flat.Paths())
	v, _ := flat.Get("rates/feedrate")
	assert.Equal(t, "100", v)
}

func TestFirstInstance_RootElement(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	path := filepath.Join(dir, "rates_default.xml")
	writeFile(t, path, `<rates><feedrate>1</feedrate></rates>`)

	inst, err := NewRepository().FirstInstance(path, domain.TypeRates)
	require.NoError(t, err)
	assert.Equal(t, "rates", inst.Name)
}

func TestFirstInstance_Errors(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	good := filepath.Join(dir, "good.xml")
	writeFile(t, good, scriptDoc)
	broken := filepath.Join(dir, "broken.xml")
	writeFile(t, broken, `<script><rates feed="1></rates></script>`)
	empty := filepath.Join(dir, "empty.xml")
	writeFile(t, empty, ``)

	repo := NewRepository()

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{name: "component absent", path: good, target: domain.ErrNotFound},
		{name: "malformed", path: broken, target: domain.ErrParse},
		{name: "no root", path: empty, target: domain.ErrParse},
		{name: "missing file", path: filepath.Join(dir, "nope.xml"), target: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.FirstInstance(tt.path, domain.TypeWing)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestInstances_AllInDocumentOrder(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	path := filepath.Join(dir, "job.xml")
	writeFile(t, path, scriptDoc)

	nodes, err := NewRepository().Instances(path, domain.TypeRates)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "300", nodes[1].Child("feedrate").Text)
}

func TestReplaceFirstInstance_PreservesRest(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	path := filepath.Join(dir, "job.xml")
	writeFile(t, path, scriptDoc)

	def := domain.NewNode("rates",
		domain.NewLeaf("feedrate", "250"),
		domain.NewLeaf("plunge", "50"),
	)

	repo := NewRepository()
	created, err := repo.ReplaceFirstInstance(path, domain.TypeRates, def)
	require.NoError(t, err)
	assert.True(t, created)

	nodes, err := repo.Instances(path, domain.TypeRates)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	first := domain.Flatten(nodes[0])
	assert.True(t, first.Equal(domain.Flatten(def)))

	// Later instances and unrelated siblings are untouched
	assert.Equal(t, "300", nodes[1].Child("feedrate").Text)
	root, err := repo.ParseDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "job 42", root.Lookup("header/name").Text)
	assert.Equal(t, "end", root.Child("footer").Text)

	backup, err := os.ReadFile(domain.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, scriptDoc, string(backup))
}

func TestReplaceFirstInstance_RenamesToType(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	path := filepath.Join(dir, "job.xml")
	writeFile(t, path, scriptDoc)

	def := domain.NewNode("something_else", domain.NewLeaf("feedrate", "7"))

	repo := NewRepository()
	_, err := repo.ReplaceFirstInstance(path, domain.TypeRates, def)
	require.NoError(t, err)

	inst, err := repo.FirstInstance(path, domain.TypeRates)
	require.NoError(t, err)
	assert.Equal(t, "7", inst.Child("feedrate").Text)
	assert.Equal(t, "something_else", def.Name, "replacement node must not be mutated")
}

func TestReplaceFirstInstance_BackupOnlyOnce(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	path := filepath.Join(dir, "job.xml")
	writeFile(t, path, scriptDoc)

	repo := NewRepository()
	def := domain.NewNode("rates", domain.NewLeaf("feedrate", "1"))

	created, err := repo.ReplaceFirstInstance(path, domain.TypeRates, def)
	require.NoError(t, err)
	assert.True(t, created)

	def2 := domain.NewNode("rates", domain.NewLeaf("feedrate", "2"))
	created, err = repo.ReplaceFirstInstance(path, domain.TypeRates, def2)
	require.NoError(t, err)
	assert.False(t, created)

	backup, err := os.ReadFile(domain.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, scriptDoc, string(backup), "backup must hold the pre-first-apply bytes")

	inst, err := repo.FirstInstance(path, domain.TypeRates)
	require.NoError(t, err)
	assert.Equal(t, "2", inst.Child("feedrate").Text)
}

func TestReplaceFirstInstance_NoInstanceLeavesFileAlone(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	path := filepath.Join(dir, "job.xml")
	writeFile(t, path, scriptDoc)

	_, err := NewRepository().ReplaceFirstInstance(path, domain.TypeWing, domain.NewNode("wing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, statErr := os.Stat(domain.BackupPath(path))
	assert.True(t, os.IsNotExist(statErr), "no backup expected")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, scriptDoc, string(data))
}

func TestSaveDefault_LoadDefault(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	defaultsDir := filepath.Join(dir, "default_components")
	path := domain.DefaultPath(defaultsDir, domain.TypeTool)

	inst := domain.NewNode("tool",
		domain.NewLeaf("number", "12"),
		domain.NewNode("holder", domain.NewLeaf("name", "HSK63")),
	)

	repo := NewRepository()
	require.NoError(t, repo.SaveDefault(path, inst))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="utf-8"?>`))

	loaded, err := repo.LoadDefault(path)
	require.NoError(t, err)
	assert.True(t, domain.Flatten(loaded).Equal(domain.Flatten(inst)))

	defaults, err := repo.ListDefaults(defaultsDir)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, defaults)
}

func TestLoadDefault_Missing(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	_, err := NewRepository().LoadDefault(filepath.Join(dir, "rates_default.xml"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListDefaults_MissingDirIsEmpty(t *testing.T) {
	defaults, err := NewRepository().ListDefaults(filepath.Join(os.TempDir(), "componentdiff-no-defaults"))
	require.NoError(t, err)
	assert.Empty(t, defaults)
}

func TestToNode_MixedText(t *testing.T) {
	dir, cleanup := setupTestCorpus(t)
	defer cleanup()

	path := filepath.Join(dir, "cdata.xml")
	writeFile(t, path, `<rates><note>a<!-- c --><![CDATA[b]]></note><empty/></rates>`)

	inst, err := NewRepository().FirstInstance(path, domain.TypeRates)
	require.NoError(t, err)
	assert.Equal(t, "ab", inst.Child("note").Text)
	assert.Equal(t, "", inst.Child("empty").Text)
}
