package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/ndumiso/bizstock/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookieName = "flash"

// Renderer renders the embedded HTML views
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render writes the named view. Render errors are logged, not surfaced; the
// response is already partially written by then.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error(req.Context()).Err(err).Str("template", name).Msg("Failed to render view")
	}
}

// SetFlash stores a one-shot status message for the next rendered page
func SetFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
	})
}

// PopFlash reads and clears the pending flash message
func PopFlash(w http.ResponseWriter, r *http.Request) (category, message string) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return "", ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", ""
	}
	for i := 0; i < len(decoded); i++ {
		if decoded[i] == '|' {
			return decoded[:i], decoded[i+1:]
		}
	}
	return "info", decoded
}
