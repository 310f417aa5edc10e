package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "svw.info/seatplan/internal/adapters/http"
	"svw.info/seatplan/internal/evaluate"
	"svw.info/seatplan/internal/infrastructure/storage"
	"svw.info/seatplan/internal/suggest"
	"svw.info/seatplan/internal/usecase"
	"svw.info/seatplan/internal/validator"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func venueFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "row.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestSolveSaveShow(t *testing.T) {
	t.Setenv("SEATPLAN_STORAGE_PATH", t.TempDir())
	venue := venueFile(t, "dimensions: [6, 1]\n")

	out, err := execute(t, "solve", "--venue", venue, "--groups", "3:1,2:1", "--threshold", "2.5", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "  1   1   1   .   2   2\n")
	assert.Contains(t, out, "groups=2 seated=5/6")
	assert.Contains(t, out, "closer than 2.50: pairs=1")
	i := strings.Index(out, "saved as ")
	require.GreaterOrEqual(t, i, 0)
	id := strings.TrimSpace(out[i+len("saved as "):])

	out, err = execute(t, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "exhaustive")

	out, err = execute(t, "runs", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "  1   1   1   .   2   2\n")
	assert.Contains(t, out, `name="row"`)
}

func TestSolveWeighted(t *testing.T) {
	t.Setenv("SEATPLAN_STORAGE_DRIVER", "memory")
	venue := venueFile(t, "dimensions: [9, 2]\nemptycols: [4]\n")

	out, err := execute(t, "solve", "--venue", venue, "--weights", "1:1,2:1", "--total", "5", "--strategy", "priority", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "strategy=priority order=desc seed=3")
	assert.Contains(t, out, "seated=5/16")
}

func TestSolveCommandErrors(t *testing.T) {
	t.Setenv("SEATPLAN_STORAGE_DRIVER", "memory")
	venue := venueFile(t, "dimensions: [3, 1]\n")
	tests := []struct {
		name string
		args []string
	}{
		{"no venue", []string{"solve", "--groups", "1:1"}},
		{"no groups", []string{"solve", "--venue", venue}},
		{"both sources", []string{"solve", "--venue", venue, "--groups", "1", "--weights", "1:1"}},
		{"bad strategy", []string{"solve", "--venue", venue, "--groups", "1", "--strategy", "best"}},
		{"does not fit", []string{"solve", "--venue", venue, "--groups", "2:2"}},
		{"unknown run", []string{"runs", "show", "missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	t.Setenv("SEATPLAN_STORAGE_DRIVER", "memory")
	venue := venueFile(t, "name: strip\ndimensions: [10, 1]\n")
	out, err := execute(t, "suggest", "--venue", venue, "--weights", "1:1", "--bootstrap", "20")
	require.NoError(t, err)
	assert.Equal(t, "strip: sell up to 5 tickets (10 seats)\n", out)
}

func TestMuxServesViewerAndAPI(t *testing.T) {
	uc := usecase.NewService(evaluate.New(), validator.New(), storage.NewFS(t.TempDir()), suggest.DefaultConfig(), nil)
	srv := httptest.NewServer(requestLogger(discardLogger(), newMux(httpadapter.New(uc))))
	defer srv.Close()

	for path, want := range map[string]int{
		"/":              http.StatusOK,
		"/static/app.js": http.StatusOK,
		"/api/list":      http.StatusOK,
		"/nope":          http.StatusNotFound,
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, path)
	}
}

func TestStatusWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}
	n, err := sw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, sw.status)
	assert.Equal(t, 5, sw.bytes)
}
