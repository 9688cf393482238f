package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	main "github.com/fwojciec/biomark/cmd/biomark"
	"github.com/fwojciec/biomark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reply = `[{"Protein Name":"Protein X","UniProt ID":null,"Organism":"Homo sapiens"}]`

func stubGenerator() *mock.Generator {
	return &mock.Generator{
		GenerateFn: func(_ context.Context, _ string) (string, error) {
			return reply, nil
		},
	}
}

func writeLinks(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "pubmed_links.txt")
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l + "\n")
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs the pipeline and lists the stored record", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><body>Protein X is a biomarker.</body></html>"))
		}))
		defer srv.Close()

		dir := t.TempDir()
		linksPath := writeLinks(t, dir, "# sample", srv.URL+"/article", "")
		dbPath := filepath.Join(dir, "biomarkers.db")
		outDir := filepath.Join(dir, "json_responses")

		m := main.NewMain()
		m.Generator = stubGenerator()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"--db", dbPath,
			"--links", linksPath,
			"--data", filepath.Join(dir, "data"),
			"--out", outDir,
			"--delay", "0s",
			"--rps", "0",
		}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Processed 1 links: 1 saved, 1 inserted, 0 failed")
		assert.Contains(t, stderr.String(), "run finished")

		data, err := os.ReadFile(filepath.Join(outDir, "article_1.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"Protein Name": "Protein X"`)

		stdout.Reset()
		m2 := main.NewMain()
		err = m2.Run(context.Background(), []string{"--db", dbPath, "records"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "article_1  Protein X  "+srv.URL+"/article")
	})

	t.Run("unreachable mongodb still writes files and counts failed inserts", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><body>Protein X is a biomarker.</body></html>"))
		}))
		defer srv.Close()

		dir := t.TempDir()
		outDir := filepath.Join(dir, "json_responses")

		m := main.NewMain()
		m.Generator = stubGenerator()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"--links", writeLinks(t, dir, srv.URL+"/article"),
			"--data", filepath.Join(dir, "data"),
			"--out", outDir,
			"--delay", "0s",
			"--rps", "0",
			"--store", "mongo",
			"--mongo-uri", "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200",
		}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Processed 1 links: 1 saved, 0 inserted, 1 failed")
		assert.Contains(t, stderr.String(), "mongodb unreachable")
		assert.FileExists(t, filepath.Join(outDir, "article_1.json"))
	})

	t.Run("rejects a batch size below one", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := main.NewMain()
		m.Generator = stubGenerator()

		err := m.Run(context.Background(), []string{
			"--db", filepath.Join(dir, "biomarkers.db"),
			"--links", writeLinks(t, dir, "https://example.com/1"),
			"--batch-size", "0",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "BatchSize")
	})

	t.Run("rejects an unknown extractor", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()

		err := m.Run(context.Background(), []string{"--extractor", "pdf"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("fails when the links file is missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := main.NewMain()
		m.Generator = stubGenerator()

		err := m.Run(context.Background(), []string{
			"--db", filepath.Join(dir, "biomarkers.db"),
			"--links", filepath.Join(dir, "missing.txt"),
		}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open links file")
	})

	t.Run("reports an empty links file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := main.NewMain()
		m.Generator = stubGenerator()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"--db", filepath.Join(dir, "biomarkers.db"),
			"--links", writeLinks(t, dir, "# nothing yet"),
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No links found")
	})

	t.Run("help prints usage", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := main.NewMain()

		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "biomark")
		assert.Contains(t, stdout.String(), "records")
	})
}

func TestRunCmd_StoreHelpNamesMongoCollection(t *testing.T) {
	t.Parallel()

	field, ok := reflect.TypeOf(main.RunCmd{}).FieldByName("Store")
	require.True(t, ok)

	help := field.Tag.Get("help")
	assert.Contains(t, help, "sqlite")
	assert.Contains(t, help, "Protein Biomarkers collection in the Biomarkers MongoDB database")
}
