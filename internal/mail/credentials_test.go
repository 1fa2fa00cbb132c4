package mail

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credenciais.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	t.Parallel()

	t.Run("yaml with defaults", func(t *testing.T) {
		t.Parallel()

		creds, err := LoadCredentials(writeCredentials(t, "host: smtp.example.com\npassword: p\n"))
		require.NoError(t, err)

		assert.Equal(t, ProviderSMTP, creds.Provider)
		assert.Equal(t, TLSStartTLS, creds.TLS)
		assert.Equal(t, 587, creds.Port)
	})

	t.Run("json is accepted", func(t *testing.T) {
		t.Parallel()

		creds, err := LoadCredentials(writeCredentials(t, `{"host":"smtp.example.com","tls":"SSL","username":"robo"}`))
		require.NoError(t, err)

		assert.Equal(t, TLSImplicit, creds.TLS)
		assert.Equal(t, 465, creds.Port)
		assert.Equal(t, "robo", creds.Username)
	})

	t.Run("outbox needs no host", func(t *testing.T) {
		t.Parallel()

		creds, err := LoadCredentials(writeCredentials(t, "provider: outbox\noutboxDir: /tmp/out\n"))
		require.NoError(t, err)
		assert.Equal(t, ProviderOutbox, creds.Provider)
	})

	t.Run("missing host", func(t *testing.T) {
		t.Parallel()

		_, err := LoadCredentials(writeCredentials(t, "password: p\n"))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		_, err := LoadCredentials(writeCredentials(t, "provider: pigeon\n"))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown tls mode", func(t *testing.T) {
		t.Parallel()

		_, err := LoadCredentials(writeCredentials(t, "host: h\ntls: maybe\n"))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadCredentials(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadCredentials(writeCredentials(t, "host: [unclosed\n"))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
