package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "credentials.yml")
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(testPath(t))
	require.NoError(t, err)

	assert.False(t, s.HasToken())
	assert.Nil(t, s.Profile())
	assert.True(t, s.Expired(time.Now()))
}

func TestSaveAndReopen(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	creds := Credentials{
		Token:     "tok-123",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
		Profile:   &catalog.Profile{Login: "reader", Authorities: []string{"ROLE_USER"}},
	}
	require.NoError(t, s.Save(creds))

	assert.Equal(t, "tok-123", s.Token())
	assert.True(t, s.HasToken())
	assert.False(t, s.Expired(time.Now()))

	// Owner-only permissions on the file itself.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", reopened.Token())
	require.NotNil(t, reopened.Profile())
	assert.Equal(t, "reader", reopened.Profile().Login)
	assert.Equal(t, []string{"ROLE_USER"}, reopened.Profile().Authorities)
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(Credentials{Token: "tok"}))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestClear_RemovesFileAndState(t *testing.T) {
	path := testPath(t)
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(Credentials{Token: "tok"}))

	require.NoError(t, s.Clear())

	assert.False(t, s.HasToken())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already-empty store is not an error.
	require.NoError(t, s.Clear())
}

func TestExpired(t *testing.T) {
	s, err := Open(testPath(t))
	require.NoError(t, err)

	now := time.Now()

	require.NoError(t, s.Save(Credentials{Token: "tok", ExpiresAt: now.Add(-time.Minute).Unix()}))
	assert.True(t, s.Expired(now))

	require.NoError(t, s.Save(Credentials{Token: "tok", ExpiresAt: now.Add(time.Hour).Unix()}))
	assert.False(t, s.Expired(now))

	// No recorded expiration means the token is trusted until rejected.
	require.NoError(t, s.Save(Credentials{Token: "tok"}))
	assert.False(t, s.Expired(now))
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0600))

	_, err := Open(path)
	assert.Error(t, err)
}
