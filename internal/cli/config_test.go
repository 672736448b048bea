package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientIDGeneratesAndSaves(t *testing.T) {
	c := &Config{ClientIDFile: filepath.Join(t.TempDir(), "nested", "client_id")}

	require.NoError(t, c.LoadClientID())
	_, err := uuid.Parse(c.ClientID)
	require.NoError(t, err)

	// A second load reads the same ID back
	again := &Config{ClientIDFile: c.ClientIDFile}
	require.NoError(t, again.LoadClientID())
	assert.Equal(t, c.ClientID, again.ClientID)
}

func TestLoadClientIDPrefersExplicitValue(t *testing.T) {
	id := uuid.NewString()
	c := &Config{ClientID: id, ClientIDFile: filepath.Join(t.TempDir(), "client_id")}

	require.NoError(t, c.LoadClientID())
	assert.Equal(t, id, c.ClientID)

	_, err := os.Stat(c.ClientIDFile)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadClientIDRejectsInvalid(t *testing.T) {
	c := &Config{ClientID: "not-a-uuid"}
	assert.Error(t, c.LoadClientID())

	path := filepath.Join(t.TempDir(), "client_id")
	require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0600))
	c = &Config{ClientIDFile: path}
	assert.Error(t, c.LoadClientID())
}
