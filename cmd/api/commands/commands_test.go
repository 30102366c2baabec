package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const dataset = `{
  "usuarios": [
    {"id": "u1", "tipo": "instrutor"},
    {"id": "u2", "tipo": "aluno", "progressoCursos": {"c1": 85}}
  ],
  "cursos": [
    {"id": "c1", "nome": "Go", "instrutorId": "u1", "aulas": []},
    {"id": "c2", "nome": "SQL", "instrutorId": "u1", "aulas": []}
  ],
  "comentarios": [
    {"id": "k1", "cursoId": "c1", "usuarioId": "u2", "texto": "top", "nota": 5}
  ],
  "certificados": []
}`

func writeStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base_dados.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))
	t.Setenv("LOG_LEVEL", "error")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestProgressThenCertificates(t *testing.T) {
	store := writeStore(t)

	out, err := run(t, "progress", "increment", "--store", store, "--user", "u2", "--course", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Progress updated: 95\n", out)

	out, err = run(t, "certificates", "issue", "--store", store)
	require.NoError(t, err)
	assert.Equal(t, "Certificates created: 1\n", out)

	out, err = run(t, "certificates", "issue", "--store", store)
	require.NoError(t, err)
	assert.Equal(t, "Certificates created: 0\n", out)
}

func TestProgress_UnknownUser(t *testing.T) {
	store := writeStore(t)

	_, err := run(t, "progress", "increment", "--store", store, "--user", "u9", "--course", "c1")
	assert.EqualError(t, err, "user not found")
}

func TestProgress_RequiresFlags(t *testing.T) {
	store := writeStore(t)

	_, err := run(t, "progress", "increment", "--store", store, "--user", "u2")
	assert.Error(t, err)
}

func TestCoursesPrune(t *testing.T) {
	store := writeStore(t)

	out, err := run(t, "courses", "prune", "--store", store)
	require.NoError(t, err)
	assert.Equal(t, "Courses removed: 1\n", out)
}

func TestStats(t *testing.T) {
	store := writeStore(t)

	out, err := run(t, "stats", "--store", store)
	require.NoError(t, err)

	var stats map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, map[string]int{"usuarios": 2, "cursos": 2, "comentarios": 1, "certificados": 0}, stats)
}

func TestExport(t *testing.T) {
	store := writeStore(t)

	out, err := run(t, "export", "--store", store, "--format", "yaml")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc["cursos"], 2)

	_, err = run(t, "export", "--store", store, "--format", "csv")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "EduTrack dev")
}
