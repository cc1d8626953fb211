package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-salon/internal/web"
)

func writeTestSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	page := `<html><head></head><body data-publishable-key="{{.PublishableKey}}"></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".well-known"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".well-known", "apple-developer-merchantid-domain-association"),
		[]byte("merchantid-payload"), 0o644))
	return dir
}

func TestIndexInjectsPublishableKey(t *testing.T) {
	t.Parallel()

	handler, err := web.NewHandler("pk_test_abc", "", writeTestSite(t))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "pk_test_abc")
}

// The shipped page must stay loadable under the default Content-Security-Policy,
// which permits no inline script: the injected config has to travel as data
// attributes and every script tag needs an external src.
func TestShippedPageHasNoInlineScript(t *testing.T) {
	t.Parallel()

	handler, err := web.NewHandler("pk_test_abc", "acct_42", filepath.Join("..", "..", "web"))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	require.Contains(t, body, `data-publishable-key="pk_test_abc"`)
	require.Contains(t, body, `data-connected-account-id="acct_42"`)

	for _, tag := range regexp.MustCompile(`<script\b[^>]*>`).FindAllString(body, -1) {
		require.Contains(t, tag, "src=", "inline script would be blocked by the default CSP: %s", tag)
	}
}

func TestConfigResponse(t *testing.T) {
	t.Parallel()

	handler, err := web.NewHandler("pk_test_abc", "acct_42", writeTestSite(t))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.Config(rr, httptest.NewRequest(http.MethodGet, "/config", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "pk_test_abc", resp["publishableKey"])
	require.Equal(t, "acct_42", resp["connectedAccountId"])
}

func TestConfigOmitsEmptyAccount(t *testing.T) {
	t.Parallel()

	handler, err := web.NewHandler("pk_test_abc", "", writeTestSite(t))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.Config(rr, httptest.NewRequest(http.MethodGet, "/config", nil))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	_, present := resp["connectedAccountId"]
	require.False(t, present)
}

func TestWellKnownServed(t *testing.T) {
	t.Parallel()

	handler, err := web.NewHandler("pk_test_abc", "", writeTestSite(t))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.WellKnown(rr, httptest.NewRequest(http.MethodGet, "/.well-known/apple-developer-merchantid-domain-association", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "merchantid-payload", rr.Body.String())
}

func TestNewHandlerMissingTemplate(t *testing.T) {
	t.Parallel()

	_, err := web.NewHandler("pk_test_abc", "", t.TempDir())
	require.Error(t, err)
}
