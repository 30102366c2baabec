package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/core/internal/adapters/repository"
	"github.com/edutrack/core/internal/infrastructure/config"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/infrastructure/metrics"
)

const dataset = `{
  "usuarios": [
    {"id": "u1", "nome": "Ana", "tipo": "instrutor"},
    {"id": "u2", "nome": "Bia", "tipo": "aluno", "cursosMatriculados": ["c1"], "progressoCursos": {"c1": 85}}
  ],
  "cursos": [
    {"id": "c1", "nome": "Go", "instrutorId": "u1", "aulas": [{"duracao": 10}, {"duracao": 20}, {}]},
    {"id": "c2", "nome": "SQL", "instrutorId": "u1", "aulas": []}
  ],
  "comentarios": [
    {"id": "k1", "cursoId": "c1", "usuarioId": "u2", "texto": "top", "nota": 5}
  ],
  "certificados": []
}`

func testConfig(storePath, basePath string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "EduTrack", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			Port:     3333,
			BasePath: basePath,
		},
		Store: config.StoreConfig{Path: storePath},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
			RateLimitRequests:  10000,
			RateLimitWindow:    time.Minute,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func newTestServer(t *testing.T, basePath string) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base_dados.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))

	log := logger.NewNop()
	m := metrics.New()
	repo := repository.NewFileSnapshotRepository(path, log, m)

	srv, err := New(testConfig(path, basePath), repo, log, m)
	require.NoError(t, err)
	return srv, path
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRoutes_StatusCodes(t *testing.T) {
	srv, _ := newTestServer(t, "")

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"instructors", http.MethodGet, "/instrutores", "", http.StatusOK},
		{"course count", http.MethodGet, "/instrutores/u1/quantidade-cursos", "", http.StatusOK},
		{"many comments", http.MethodGet, "/cursos/com-muitos-comentarios?min=0", "", http.StatusOK},
		{"ranked", http.MethodGet, "/cursos/ordenados-por-nota", "", http.StatusOK},
		{"average progress", http.MethodGet, "/cursos/c1/media-progresso", "", http.StatusOK},
		{"average progress empty", http.MethodGet, "/cursos/c2/media-progresso", "", http.StatusNotFound},
		{"average rating empty", http.MethodGet, "/cursos/c2/media-nota", "", http.StatusNotFound},
		{"duration unknown course", http.MethodGet, "/cursos/c9/duracao-total", "", http.StatusNotFound},
		{"high progress", http.MethodGet, "/cursos/c1/alunos-progresso-alto?min=80", "", http.StatusOK},
		{"progress above", http.MethodGet, "/usuarios/com-progresso-acima?min=abc", "", http.StatusOK},
		{"grouped", http.MethodGet, "/usuarios/agrupados-por-tipo", "", http.StatusOK},
		{"multiple certificates", http.MethodGet, "/usuarios/com-multiplos-certificados", "", http.StatusOK},
		{"courses of unknown user", http.MethodGet, "/usuarios/u9/cursos", "", http.StatusNotFound},
		{"comments of unknown user", http.MethodGet, "/usuarios/u9/comentarios", "", http.StatusOK},
		{"status of unknown user", http.MethodGet, "/usuarios/u9/status-cursos", "", http.StatusNotFound},
		{"increment unknown user", http.MethodPatch, "/usuarios/u9/progresso/c1", "", http.StatusNotFound},
		{"certificates per course", http.MethodGet, "/certificados/por-curso", "", http.StatusOK},
		{"create course missing fields", http.MethodPost, "/cursos", `{"nome": "X"}`, http.StatusBadRequest},
		{"create course bad instructor", http.MethodPost, "/cursos", `{"nome": "X", "instrutorId": "u2", "aulas": []}`, http.StatusBadRequest},
		{"create course malformed", http.MethodPost, "/cursos", `{"nome": `, http.StatusBadRequest},
		{"comment missing text", http.MethodPost, "/cursos/c1/comentarios", `{"usuarioId": "u2"}`, http.StatusBadRequest},
		{"comment unknown course", http.MethodPost, "/cursos/c9/comentarios", `{"usuarioId": "u2", "texto": "x"}`, http.StatusNotFound},
		{"comment unknown user", http.MethodPost, "/cursos/c1/comentarios", `{"usuarioId": "u9", "texto": "x"}`, http.StatusNotFound},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ready", http.MethodGet, "/ready", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestErrors_HaveMessageBody(t *testing.T) {
	srv, _ := newTestServer(t, "")

	rec := do(t, srv, http.MethodGet, "/usuarios/u9/cursos", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", decode(t, rec)["message"])

	rec = do(t, srv, http.MethodPost, "/cursos", `{"nome": "X", "instrutorId": "u9", "aulas": []}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "instructor not found", decode(t, rec)["message"])
}

func TestIncrementProgress_Persists(t *testing.T) {
	srv, path := newTestServer(t, "")

	rec := do(t, srv, http.MethodPatch, "/usuarios/u2/progresso/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 95.0, decode(t, rec)["progresso"])

	rec = do(t, srv, http.MethodPatch, "/usuarios/u2/progresso/c1", "")
	assert.Equal(t, 100.0, decode(t, rec)["progresso"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"c1": 100`)
}

func TestCreateCourseAndComment(t *testing.T) {
	srv, _ := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/cursos", `{"nome": "Docker", "instrutorId": "u1", "aulas": [{"duracao": 5}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	course := decode(t, rec)["curso"].(map[string]interface{})
	assert.Equal(t, "Docker", course["nome"])
	id := course["id"].(string)
	assert.NotEmpty(t, id)

	rec = do(t, srv, http.MethodPost, "/cursos/"+id+"/comentarios", `{"usuarioId": "u2", "texto": "bom", "nota": null}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode(t, rec)["comentario"].(map[string]interface{})
	assert.Equal(t, id, comment["cursoId"])
	assert.Nil(t, comment["nota"])

	rec = do(t, srv, http.MethodGet, "/instrutores/u1/quantidade-cursos", "")
	assert.Equal(t, 3.0, decode(t, rec)["quantidadeCursos"])
}

func TestAggregates(t *testing.T) {
	srv, _ := newTestServer(t, "")

	body := decode(t, do(t, srv, http.MethodGet, "/cursos/c1/duracao-total", ""))
	assert.Equal(t, "c1", body["cursoId"])
	assert.Equal(t, 30.0, body["duracaoTotal"])

	body = decode(t, do(t, srv, http.MethodGet, "/cursos/c1/media-nota", ""))
	assert.Equal(t, 5.0, body["mediaNota"])

	rec := do(t, srv, http.MethodGet, "/cursos/ordenados-por-nota", "")
	var ranked []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "c1", ranked[0]["id"])
	assert.Equal(t, 0.0, ranked[1]["mediaNota"])
}

func TestCertificatesAndPrune(t *testing.T) {
	srv, _ := newTestServer(t, "")

	do(t, srv, http.MethodPatch, "/usuarios/u2/progresso/c1", "")

	rec := do(t, srv, http.MethodPost, "/certificados", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1.0, decode(t, rec)["certificadosCriados"])

	rec = do(t, srv, http.MethodPost, "/certificados", "")
	assert.Equal(t, 0.0, decode(t, rec)["certificadosCriados"])

	rec = do(t, srv, http.MethodDelete, "/cursos/sem-comentarios", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decode(t, rec)["cursosRemovidos"])
}

func TestBasePath(t *testing.T) {
	srv, _ := newTestServer(t, "/api")

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/instrutores", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/instrutores", "").Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", "").Code)
}

func TestDetailedHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, "")

	rec := do(t, srv, http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	checks := decode(t, rec)["checks"].(map[string]interface{})
	stats := checks["store"].(map[string]interface{})["stats"].(map[string]interface{})
	assert.Equal(t, 2.0, stats["usuarios"])
	assert.Equal(t, 2.0, stats["cursos"])

	do(t, srv, http.MethodPatch, "/usuarios/u2/progresso/c1", "")

	rec = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "edutrack_progress_increments_total 1")
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestReady_MissingStoreDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "base_dados.json")
	log := logger.NewNop()
	repo := repository.NewFileSnapshotRepository(path, log, nil)

	srv, err := New(testConfig(path, ""), repo, log, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, do(t, srv, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/metrics", "").Code)
}
