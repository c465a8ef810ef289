package scrappey

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("SCRAPPEY_KEY", "")
	_, err := NewClient(ClientOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")
}

func TestNewClientKeyFromEnv(t *testing.T) {
	t.Setenv("SCRAPPEY_KEY", "env-key")
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)
	require.Equal(t, "env-key", client.key)
}

func TestNewClientConcurrencyClamp(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		want      int
	}{
		{"Zero", 0, 1},
		{"Negative", -5, 1},
		{"InRange", 42, 42},
		{"AboveLimit", 500, MaxAllowedConcurrency},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(ClientOptions{
				Key:            "test-key",
				MaxConcurrency: tc.requested,
			})
			require.NoError(t, err)
			require.Equal(t, tc.want, client.maxConcurrency)
			require.Equal(t, tc.want, cap(client.gate))
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(ClientOptions{Key: "test-key"})
	require.NoError(t, err)
	require.Equal(t, DefaultTimeout, client.timeout)
	require.Equal(t, DefaultMaxRetries, client.maxRetries)
	require.Equal(t, DefaultRetryDelay, client.retryDelay)
	require.Equal(t, DefaultRetryMaxDelay, client.retryMaxDelay)
}

func TestOptionsFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "scrappey.json5"),
		[]byte(`{
			// checked in defaults
			key: "file-key",
			max_concurrency: 8,
			timeout_seconds: 45,
			max_retries: 2,
			retry_delay_seconds: 0.5,
		}`),
		0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "scrappey.local.json5"),
		[]byte(`{key: "local-key"}`),
		0644,
	))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		require.NoError(t, os.Chdir(cwd))
	}()

	opts, err := OptionsFromConfig("scrappey.json5")
	require.NoError(t, err)
	require.Equal(t, "local-key", opts.Key)
	require.Equal(t, 8, opts.MaxConcurrency)
	require.Equal(t, 45*time.Second, opts.Timeout)
	require.Equal(t, 2, opts.MaxRetries)
	require.Equal(t, 500*time.Millisecond, opts.RetryDelay)
}
