package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesCategoryDirectories(t *testing.T) {
	root := t.TempDir()

	_, err := New(root)
	require.NoError(t, err)

	for _, category := range []string{CategoryPatients, CategoryExams, CategoryPrescriptions, CategoryTemp} {
		info, err := os.Stat(filepath.Join(root, category))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestSaveMovesStagedFile(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	staged := store.TempPath("staged.pdf")
	require.NoError(t, os.WriteFile(staged, []byte("datos"), 0o644))

	relPath, err := store.Save(CategoryExams, "final.pdf", staged)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(CategoryExams, "final.pdf"), relPath)

	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(store.AbsPath(relPath))
	require.NoError(t, err)
	assert.Equal(t, "datos", string(content))
}

func TestSaveMissingSource(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(CategoryExams, "final.pdf", store.TempPath("no-existe.pdf"))
	assert.Error(t, err)
}

func TestRemoveToleratesAbsentFile(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(filepath.Join(CategoryExams, "no-existe.pdf")))
	assert.NoError(t, store.Remove(""))
}

func TestRemoveDeletesStoredFile(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	staged := store.TempPath("staged.pdf")
	require.NoError(t, os.WriteFile(staged, []byte("datos"), 0o644))
	relPath, err := store.Save(CategoryPatients, "foto.pdf", staged)
	require.NoError(t, err)

	require.NoError(t, store.Remove(relPath))
	_, err = os.Stat(store.AbsPath(relPath))
	assert.True(t, os.IsNotExist(err))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Maria_Perez", SanitizeName("Maria Perez"))
	assert.Equal(t, "Mar_a_P_rez", SanitizeName("María Pérez"))
	assert.Equal(t, "Rayos-X_t_rax", SanitizeName("Rayos-X tórax"))
	assert.Equal(t, "informe", SanitizeName("  informe  "))
	assert.Equal(t, "", SanitizeName("¿¿??"))
}
