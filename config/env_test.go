package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	r := require.New(t)

	path := writeFile(t, `
# database
PGHOST = db.example.com
PGPORT=5432
PGPASSWORD=a=b=c
not a pair
   # indented comment

PGUSER=report
EMPTY=
`)

	values, err := Load(path)
	r.NoError(err)

	r.Equal(Values{
		"PGHOST":     "db.example.com",
		"PGPORT":     "5432",
		"PGPASSWORD": "a=b=c",
		"PGUSER":     "report",
		"EMPTY":      "",
	}, values)
}

func TestLoadOnlyComments(t *testing.T) {
	r := require.New(t)

	values, err := Load(writeFile(t, "# one\n\n   \n# two=2\n"))
	r.NoError(err)
	r.Empty(values)
}

func TestLoadMissingFile(t *testing.T) {
	r := require.New(t)

	values, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	r.NoError(err)
	r.NotNil(values)
	r.Empty(values)
}

func TestLoadDirectory(t *testing.T) {
	r := require.New(t)

	_, err := Load(t.TempDir())
	r.Error(err)
}

func TestRequire(t *testing.T) {
	r := require.New(t)

	values := Values{"PGHOST": "localhost", "PGUSER": ""}

	r.NoError(values.Require("PGHOST"))

	err := values.Require("PGHOST", "PGUSER", "PGDATABASE")
	r.ErrorIs(err, ErrConfigMissing)
	r.ErrorContains(err, "PGDATABASE, PGUSER")
}

func TestWithPrefix(t *testing.T) {
	r := require.New(t)

	values := Values{"PGHOST": "a", "PGUSER": "b", "MSSQLHOST": "c", "PG": "ignored"}

	r.Equal(map[string]string{"host": "a", "user": "b"}, values.WithPrefix("PG"))
	r.Equal(map[string]string{"host": "c"}, values.WithPrefix("MSSQL"))
}
