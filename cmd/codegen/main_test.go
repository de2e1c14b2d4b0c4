package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/delaneyj/reactiveparty/cmd/codegen/templates"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todoConfig() *templates.Config {
	return &templates.Config{
		Package: "todo",
		Type:    "Todo",
		Fields: []templates.Field{
			{Name: "title", Type: "string"},
			{Name: "done", Type: "bool"},
		},
	}
}

func TestRenderGolden(t *testing.T) {
	out, err := render(todoConfig())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "todo", out)
}

func TestExampleIsUpToDate(t *testing.T) {
	out, err := render(todoConfig())
	require.NoError(t, err)
	assert.NoError(t, checkGenerated(filepath.Join("..", "..", "examples", "todo", "todo_gen.go"), out))
}

func TestRenderRejectsInvalidConfig(t *testing.T) {
	cfg := todoConfig()
	cfg.Type = "todo"
	_, err := render(cfg)
	assert.ErrorContains(t, err, "exported identifier")
}

func TestVerifyDigest(t *testing.T) {
	out, err := render(todoConfig())
	require.NoError(t, err)
	require.NoError(t, verifyDigest(out))

	edited := bytes.Replace(out, []byte(`"title"`), []byte(`"name"`), 1)
	assert.ErrorIs(t, verifyDigest(edited), errHandEdited)
	assert.ErrorIs(t, verifyDigest([]byte("package todo\n")), errHandEdited)
}

func TestWriteGeneratedSkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_gen.go")
	out, err := render(todoConfig())
	require.NoError(t, err)

	changed, err := writeGenerated(path, out, false)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = writeGenerated(path, out, false)
	require.NoError(t, err)
	assert.False(t, changed)

	cfg := todoConfig()
	cfg.Fields = append(cfg.Fields, templates.Field{Name: "priority", Type: "int"})
	next, err := render(cfg)
	require.NoError(t, err)
	changed, err = writeGenerated(path, next, false)
	require.NoError(t, err)
	assert.True(t, changed, "regenerating over a pristine file is allowed")
}

func TestWriteGeneratedProtectsHandEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_gen.go")
	out, err := render(todoConfig())
	require.NoError(t, err)

	edited := append(bytes.Clone(out), []byte("\n// mine\n")...)
	require.NoError(t, os.WriteFile(path, edited, 0o644))

	_, err = writeGenerated(path, out, false)
	assert.ErrorIs(t, err, errHandEdited)

	changed, err := writeGenerated(path, out, true)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out, got)
}

func TestCheckGeneratedDiff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_gen.go")
	out, err := render(todoConfig())
	require.NoError(t, err)

	err = checkGenerated(path, out)
	assert.ErrorIs(t, err, errStale, "missing files are stale")

	require.NoError(t, os.WriteFile(path, out, 0o644))
	require.NoError(t, checkGenerated(path, out))

	cfg := todoConfig()
	cfg.Fields = cfg.Fields[:1]
	next, err := render(cfg)
	require.NoError(t, err)

	err = checkGenerated(path, next)
	require.ErrorIs(t, err, errStale)
	assert.Contains(t, err.Error(), "--- "+path)
	assert.Contains(t, err.Error(), "+++ "+path+" (generated)")
	assert.Contains(t, err.Error(), `-	raw["done"] = done`)
}
