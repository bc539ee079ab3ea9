package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileStartsWithDefaults(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "state.json"))

	store.View(func(st *State) {
		assert.Equal(t, "Mi Negocio", st.Settings.BusinessName)
		assert.Equal(t, 13, st.Settings.TaxRate)
		assert.Empty(t, st.Notifications)
		assert.Empty(t, st.Cart)
	})
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	store := Open(path)
	err := store.Update(func(st *State) {
		st.Settings.BusinessName = "Pulpería Central"
		st.Cart = append(st.Cart, CartItem{ProductID: "p1", Name: "Café", Price: 2500, Quantity: 2})
	})
	require.NoError(t, err)

	reloaded := Open(path)
	reloaded.View(func(st *State) {
		assert.Equal(t, "Pulpería Central", st.Settings.BusinessName)
		require.Len(t, st.Cart, 1)
		assert.Equal(t, int64(2500), st.Cart[0].Price)
	})
}

func TestOpenCorruptBlobStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := Open(path)
	store.View(func(st *State) {
		assert.Equal(t, DefaultSettings(), st.Settings)
	})
}

func TestUpdateKeepsMemoryWhenSaveFails(t *testing.T) {
	dir := t.TempDir()
	// A directory at the blob path makes the write fail.
	path := filepath.Join(dir, "state.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	store := Open(path)
	err := store.Update(func(st *State) {
		st.Settings.BusinessName = "Cambiado"
	})
	assert.Error(t, err)

	store.View(func(st *State) {
		assert.Equal(t, "Cambiado", st.Settings.BusinessName)
	})
}
