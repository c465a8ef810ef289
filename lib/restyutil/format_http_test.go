package restyutil

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	formatted := formatHeaders(headers)
	require.Equal(t, "Content-Type: application/json", formatted)
	require.False(t, strings.HasSuffix(formatted, "\n"))
}

func TestFormatRequestBodyNilGetBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
	require.NoError(t, err)
	req.GetBody = nil

	require.Equal(t, "", formatRequestBody(req))
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "http-dumps")

	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	out.Write("1", "---- REQUEST ----")
	contents, err := os.ReadFile(filepath.Join(dir, "1"))
	require.NoError(t, err)
	require.Equal(t, "---- REQUEST ----", string(contents))

	// construction wipes previous dumps
	out, err = NewFilesystemOutput(dir)
	require.NoError(t, err)
	_ = out
	_, err = os.ReadFile(filepath.Join(dir, "1"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
