package extract_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oestevezr/mapstruct/extract"
)

// writeTree lays out a minimal Maven-style Java project.
func writeTree(t *testing.T) (root, businessDir string) {
	t.Helper()

	root = t.TempDir()
	businessDir = filepath.Join(root, "src", "main", "java", "com", "example", "business", "v1")

	files := map[string]string{
		filepath.Join(businessDir, "dto", "UserDTO.java"):                      userDTO,
		filepath.Join(businessDir, "dao", "model", "kcdt", "CUSTCE01.java"):    custDAO,
		filepath.Join(businessDir, "dao", "model", "kcdt", "RequestKcdt.java"): `public class RequestKcdt { @Campo private String ignored; }`,
		filepath.Join(businessDir, "dao", "model", "othr", "OTHRCS02.java"):    `public class OTHRCS02 { @Campo private String code; }`,
	}

	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root, businessDir
}

func TestFindBusinessDir(t *testing.T) {
	t.Parallel()

	root, businessDir := writeTree(t)

	got, err := extract.FindBusinessDir(root)
	require.NoError(t, err)
	assert.Equal(t, businessDir, got)
}

func TestFindBusinessDirMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "main", "java", "plain"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main", "java", "plain", "A.java"), []byte("public class A {}"), 0o600))

	_, err := extract.FindBusinessDir(dir)
	assert.ErrorIs(t, err, extract.ErrNoBusinessFolder)
}

func TestModelSubfolders(t *testing.T) {
	t.Parallel()

	_, businessDir := writeTree(t)

	folders, err := extract.ModelSubfolders(businessDir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kcdt", "othr"}, folders)
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	_, businessDir := writeTree(t)

	cat, err := extract.Catalog(businessDir, "kcdt")
	require.NoError(t, err)

	require.Len(t, cat.Source, 1)
	assert.Equal(t, "UserDTO", cat.Source[0].Name)
	assert.Len(t, cat.Source[0].Fields, 3)

	// Request*/Response* classes are excluded from the DAO side.
	names := make([]string, 0, len(cat.Target))
	for _, f := range cat.Target {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"userId", "customerName"}, names)
}

func TestCatalogUnknownModel(t *testing.T) {
	t.Parallel()

	_, businessDir := writeTree(t)

	_, err := extract.Catalog(businessDir, "nope")
	assert.Error(t, err)
}
