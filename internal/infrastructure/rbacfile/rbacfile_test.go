//go:build unit
// +build unit

package rbacfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sommertheater/portal/internal/domain/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `roles:
  kasse:
    - finance.read
    - finance.write
    - finance.read
  mitglied:
    - rehearsals.read
`

func TestDecode(t *testing.T) {
	m, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []access.Permission{access.PermFinanceRead, access.PermFinanceWrite}, m[access.RoleKasse])
	assert.Equal(t, []access.Permission{access.PermRehearsalsRead}, m[access.RoleMitglied])
}

func TestDecode_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown role":       "roles:\n  intendant:\n    - members.read\n",
		"unknown permission": "roles:\n  kasse:\n    - finance.steal\n",
		"admin":              "roles:\n  admin:\n    - members.read\n",
		"unknown field":      "rollen:\n  kasse: []\n",
		"empty":              "",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecode_DefaultMatrix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, access.DefaultMatrix()))

	path := filepath.Join(t.TempDir(), "rbac.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, access.DefaultMatrix().Rows(), m.Rows())
}
