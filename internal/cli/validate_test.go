package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/conform"
	api "github.com/aretw0/conform/pkg/adapters/http"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/client"
	"github.com/aretw0/conform/pkg/document"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileSchema = `
name:
  type: String
  required: true
stages:
  type: Array
  minSize: 1
  template:
    time_sec: {type: Integer, min: 0, max: 1000, required: true}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func newLocalChecker(t *testing.T) LocalChecker {
	t.Helper()
	node, err := schema.Parse([]byte(profileSchema))
	require.NoError(t, err)
	engine, err := conform.New()
	require.NoError(t, err)
	return LocalChecker{Engine: engine, Node: node}
}

func TestValidateFiles_Local(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"good.json":   `{"name": "rice", "stages": [{"time_sec": 600}]}`,
		"bad.yaml":    "name: rice\nstages:\n  - time_sec: 6000\n",
		"multi.yml":   "name: a\nstages: [{time_sec: 1}]\n---\nname: b\nstages: []\n",
		"broken.json": `{"name": `,
	})

	paths := []string{
		filepath.Join(dir, "good.json"),
		filepath.Join(dir, "bad.yaml"),
		filepath.Join(dir, "multi.yml"),
		filepath.Join(dir, "broken.json"),
		filepath.Join(dir, "missing.json"),
	}
	results := ValidateFiles(context.Background(), newLocalChecker(t), paths, document.FormatAuto, nil)
	require.Len(t, results, 6)

	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	assert.NoError(t, results[1].Err)

	assert.True(t, results[2].Valid)
	assert.False(t, results[3].Valid)
	assert.True(t, strings.HasSuffix(results[3].Label(), "multi.yml#2"))

	assert.Error(t, results[4].Err)
	assert.Error(t, results[5].Err)
	assert.Equal(t, paths[4], results[5].Label())

	assert.Equal(t, 4, CountFailures(results))
}

func TestValidateFiles_Stdin(t *testing.T) {
	checker := newLocalChecker(t)

	stdin := strings.NewReader(`{"name": "rice", "stages": [{"time_sec": 1}]}`)
	results := ValidateFiles(context.Background(), checker, []string{StdinPath}, document.FormatAuto, stdin)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
	assert.Equal(t, "-", results[0].Label())

	results = ValidateFiles(context.Background(), checker, []string{StdinPath}, document.FormatYAML, strings.NewReader(""))
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestValidateFiles_FormatOverride(t *testing.T) {
	dir := writeFiles(t, map[string]string{"doc.txt": "name: rice\nstages: [{time_sec: 1}]\n"})
	path := filepath.Join(dir, "doc.txt")

	results := ValidateFiles(context.Background(), newLocalChecker(t), []string{path}, document.FormatYAML, nil)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)

	results = ValidateFiles(context.Background(), newLocalChecker(t), []string{path}, document.FormatJSON, nil)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestLocalChecker_Named(t *testing.T) {
	node, err := schema.Parse([]byte(profileSchema))
	require.NoError(t, err)
	store, err := memory.NewFromSchemas(map[string]*schema.Node{"profile": node})
	require.NoError(t, err)
	engine, err := conform.New(conform.WithStore(store))
	require.NoError(t, err)

	checker := LocalChecker{Engine: engine, Name: "profile"}
	valid, err := checker.Check(context.Background(), map[string]any{"name": "x", "stages": []any{map[string]any{"time_sec": 3}}})
	require.NoError(t, err)
	assert.True(t, valid)

	_, err = LocalChecker{Engine: engine, Name: "other"}.Check(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
}

func TestRemoteChecker(t *testing.T) {
	engine, err := conform.New()
	require.NoError(t, err)
	srv := httptest.NewServer(api.NewHandler(engine, api.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	node, err := schema.Parse([]byte(profileSchema))
	require.NoError(t, err)
	require.NoError(t, c.PutSchema(context.Background(), "profile", node))

	dir := writeFiles(t, map[string]string{
		"good.yaml": "name: rice\nstages: [{time_sec: 5}]\n",
		"bad.yaml":  "stages: [{time_sec: 5}]\n",
	})
	paths := []string{filepath.Join(dir, "good.yaml"), filepath.Join(dir, "bad.yaml")}

	for _, checker := range []Checker{
		RemoteChecker{Client: c, Node: node},
		RemoteChecker{Client: c, Name: "profile"},
	} {
		results := ValidateFiles(context.Background(), checker, paths, document.FormatAuto, nil)
		require.Len(t, results, 2)
		assert.True(t, results[0].Valid)
		assert.False(t, results[1].Valid)
		assert.NoError(t, results[1].Err)
	}
}
