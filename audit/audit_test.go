package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dv "github.com/definexml/validator"
)

func writeDefine(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "define.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewTrail(t *testing.T) {
	content := `<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3"/>`
	path := writeDefine(t, content)

	trail, err := NewTrail(path)
	require.NoError(t, err)

	assert.Equal(t, path, trail.DefinePath)
	assert.Equal(t, int64(len(content)), trail.DefineSizeBytes)
	assert.Equal(t, dv.Version, trail.ValidatorVersion)
	assert.False(t, trail.Timestamp.IsZero())
	assert.Len(t, trail.DefineSHA256, 64)

	// VAL-<timestamp>-<8 hex chars>
	assert.Regexp(t, `^VAL-\d{8}T\d{6}Z-[0-9a-f]{8}$`, trail.ValidationID)
}

func TestNewTrail_UniqueIDs(t *testing.T) {
	path := writeDefine(t, "<ODM/>")

	a, err := NewTrail(path)
	require.NoError(t, err)
	b, err := NewTrail(path)
	require.NoError(t, err)

	assert.NotEqual(t, a.ValidationID, b.ValidationID)
}

func TestNewTrail_MissingFile(t *testing.T) {
	_, err := NewTrail(filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}

func TestTrail_Log(t *testing.T) {
	path := writeDefine(t, "<ODM/>")

	trail, err := NewTrail(path)
	require.NoError(t, err)

	trail.Log("business", "PASS", "0 findings")
	trail.Log("patterns", "FAIL", "2 findings")

	require.Len(t, trail.ChecksPerformed, 2)
	assert.Equal(t, "business", trail.ChecksPerformed[0].Check)
	assert.Equal(t, "FAIL", trail.ChecksPerformed[1].Status)
	assert.False(t, trail.ChecksPerformed[0].Timestamp.IsZero())
}

func TestHash(t *testing.T) {
	// Known SHA-256 of the empty string.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Hash(nil))

	// Deterministic and content-sensitive.
	assert.Equal(t, Hash([]byte("define")), Hash([]byte("define")))
	assert.NotEqual(t, Hash([]byte("define")), Hash([]byte("Define")))
}

func TestHashFile(t *testing.T) {
	path := writeDefine(t, "checksum me")

	got, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, Hash([]byte("checksum me")), got)
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}

func TestNewTrail_HashMatchesContent(t *testing.T) {
	content := strings.Repeat("<Data/>", 1000)
	path := writeDefine(t, content)

	trail, err := NewTrail(path)
	require.NoError(t, err)
	assert.Equal(t, Hash([]byte(content)), trail.DefineSHA256)
}
