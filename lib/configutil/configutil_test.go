package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Endpoint string `json:"endpoint"`
	Retries  int    `json:"retries"`
}

func TestReadConfigMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "client.json5")

	require.NoError(t, os.WriteFile(base, []byte(`{
		// base config, checked in
		endpoint: "https://prod.example.com",
		retries: 3,
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.local.json5"), []byte(`{
		endpoint: "http://localhost:8080",
	}`), 0644))

	config, err := ReadConfig[testConfig](base)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", config.Endpoint)
	require.Equal(t, 3, config.Retries)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "client.json5")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.local.json5"), []byte(`{endpoint: "http://localhost:8080"}`), 0644))

	config, err := ReadConfig[testConfig](base)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", config.Endpoint)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursivelyWalksUp(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.json5"), []byte(`{retries: 7}`), 0644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer func() {
		require.NoError(t, os.Chdir(cwd))
	}()

	config, err := ReadRecursively[testConfig]("client.json5")
	require.NoError(t, err)
	require.Equal(t, 7, config.Retries)
}
