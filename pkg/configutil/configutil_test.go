package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string `json:"name"`
	Pages   int    `json:"pages"`
	Address string `json:"address"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0o644)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		name: "base",
		pages: 100,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ pages: 5 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "base", Pages: 5}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "app.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ name: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadOrDefault(t *testing.T) {
	defaults := testConfig{Name: "default", Pages: 100, Address: ":8080"}

	cfg, err := ReadOrDefault(filepath.Join(t.TempDir(), "app.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ pages: 3 }`)
	cfg, err = ReadOrDefault(filepath.Join(dir, "app.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "default", Pages: 3, Address: ":8080"}, cfg)
}
