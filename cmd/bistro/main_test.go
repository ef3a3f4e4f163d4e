package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	t.Chdir(t.TempDir())
	db := filepath.Join(t.TempDir(), "bistro.db")

	t.Run("runs a command", func(t *testing.T) {
		var out bytes.Buffer
		err := Execute(context.Background(), []string{"--db", db, "category", "create", "--name", "Starters"}, strings.NewReader(""), &out)
		require.NoError(t, err)
		assert.Equal(t, "Category created successfully: Category(id=1, name=Starters)\n", out.String())
	})

	t.Run("returns command errors", func(t *testing.T) {
		var out bytes.Buffer
		err := Execute(context.Background(), []string{"--db", db, "dish", "get", "zero"}, strings.NewReader(""), &out)
		assert.ErrorContains(t, err, "invalid id")
	})

	t.Run("reads menu input", func(t *testing.T) {
		var out bytes.Buffer
		err := Execute(context.Background(), []string{"--db", db, "menu"}, strings.NewReader("1\n5\n0\n"), &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Category(id=1, name=Starters)")
	})
}
