package web

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/noah-isme/backend-salon/internal/common"
)

// wellKnownFile is the fixed path Apple Pay domain verification requires.
const wellKnownFile = "apple-developer-merchantid-domain-association"

// Handler serves the checkout page, the public client configuration, and the
// static assets the page depends on. Only public values are injected here;
// the processor secret key never reaches this package.
type Handler struct {
	PublishableKey string
	// AccountID is the optional connected account the client library scopes
	// its calls to.
	AccountID string
	WebDir    string

	tmpl *template.Template
}

// NewHandler parses the page template from the configured web directory.
func NewHandler(publishableKey, accountID, webDir string) (*Handler, error) {
	dir := strings.TrimSpace(webDir)
	if dir == "" {
		dir = "web"
	}
	tmpl, err := template.ParseFiles(filepath.Join(dir, "index.html"))
	if err != nil {
		return nil, fmt.Errorf("parse checkout page template: %w", err)
	}
	return &Handler{
		PublishableKey: publishableKey,
		AccountID:      accountID,
		WebDir:         dir,
		tmpl:           tmpl,
	}, nil
}

type pageData struct {
	PublishableKey string
	AccountID      string
}

// Index renders the checkout page with the injected publishable key.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, pageData{PublishableKey: h.PublishableKey, AccountID: h.AccountID}); err != nil {
		http.Error(w, "render checkout page", http.StatusInternalServerError)
	}
}

type configResp struct {
	PublishableKey     string `json:"publishableKey"`
	ConnectedAccountID string `json:"connectedAccountId,omitempty"`
}

// Config returns the public client configuration as JSON.
func (h *Handler) Config(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, configResp{
		PublishableKey:     h.PublishableKey,
		ConnectedAccountID: h.AccountID,
	})
}

// Assets serves static files (scripts, styles) from the web directory.
func (h *Handler) Assets() http.Handler {
	fs := http.FileServer(http.Dir(filepath.Join(h.WebDir, "assets")))
	return http.StripPrefix("/assets/", fs)
}

// WellKnown serves the wallet domain-verification file. The path is an
// external platform requirement and must stay stable.
func (h *Handler) WellKnown(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.WebDir, ".well-known", wellKnownFile))
}
