package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	cmd := rootCmd()

	for _, path := range [][]string{{"serve"}, {"version"}, {"migrate", "up"}, {"migrate", "down"}} {
		found, _, err := cmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestMigrateRejectsMongoDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate", "up"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	cmd := rootCmd()
	cmd.SetArgs([]string{"serve"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}
