package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// executeCommand runs the root command and returns everything it printed.
// Flag variables are reset when the test ends.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		configPath = ""
		configInitForce = false
		searchLabel = ""
		searchPageSize = domain.DefaultPageSize
		searchSnippets = false
		searchJSON = false
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// writeConfig writes a TOML config pointing at baseURL and returns its path.
func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `fessBaseUrl = "` + baseURL + `"

[domain]
id = "kb"
name = "Knowledge Base"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// newFessServer serves canned Fess search responses.
func newFessServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/documents":
			_, _ = w.Write([]byte(`{
				"record_count": 1,
				"data": [{
					"doc_id": "d1",
					"title": "Employee Handbook",
					"url": "http://intranet/handbook",
					"content": "The employee handbook covers vacation and travel."
				}]
			}`))
		case "/api/v1/labels":
			_, _ = w.Write([]byte(`{"record_count": 0, "data": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}
