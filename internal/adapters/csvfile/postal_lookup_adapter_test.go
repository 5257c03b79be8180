package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeLookupFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plz_ort.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPostalLookupLoad(t *testing.T) {
	path := writeLookupFile(t, "plz,ort\n8001,Zürich\n8400,Winterthur\n3000,Bern\n")

	lookup, err := NewPostalLookupAdapter(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, lookup, 3)
	require.Equal(t, "Zürich", lookup["8001"])
	require.Equal(t, "Winterthur", lookup["8400"])
}

func TestPostalLookupNormalizesLocalityCase(t *testing.T) {
	path := writeLookupFile(t, "plz,ort\n8001,zürich\n")

	lookup, err := NewPostalLookupAdapter(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Zürich", lookup["8001"])
}

func TestPostalLookupSkipsInvalidRows(t *testing.T) {
	path := writeLookupFile(t, "plz,ort\n8001,Zürich\nabcd,Nirgendwo\n123,Zukurz\n8400,\n8600,Dübendorf\n")

	lookup, err := NewPostalLookupAdapter(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, lookup, 2)
	require.Contains(t, lookup, "8001")
	require.Contains(t, lookup, "8600")
}

func TestPostalLookupMissingFile(t *testing.T) {
	_, err := NewPostalLookupAdapter(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
	require.Error(t, err)
}

func TestPostalLookupNoValidEntries(t *testing.T) {
	path := writeLookupFile(t, "plz,ort\nabcd,Nirgendwo\n")

	_, err := NewPostalLookupAdapter(path).Load(context.Background())
	require.Error(t, err)
}
