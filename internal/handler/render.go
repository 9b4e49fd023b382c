package handler

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"dashboard-service/internal/session"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Chrome is the shared shell data every page carries: title, role styling,
// and the super-admin impersonation banner.
type Chrome struct {
	Title           string
	Role            string
	Impersonating   bool
	SuperAdminName  string
	SuperAdminEmail string
}

// Renderer executes embedded page templates.
type Renderer struct {
	tmpl     *template.Template
	sessions session.Repository
	logger   *zap.Logger
}

func NewRenderer(sessions session.Repository, logger *zap.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, sessions: sessions, logger: logger}, nil
}

func (rn *Renderer) Render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rn.tmpl.ExecuteTemplate(w, name, data); err != nil {
		rn.logger.Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Chrome assembles the shell data for the current session. The banner shows
// only when the impersonation marker is set; name/email come from the cached
// profile blob with the superAdmin* fields taking precedence, as the
// layouts always displayed them.
func (rn *Renderer) Chrome(ctx context.Context, title, role string) Chrome {
	c := Chrome{Title: title, Role: role}

	sid := session.FromContext(ctx)
	if sid == "" {
		return c
	}
	on, err := rn.sessions.Impersonating(ctx, sid)
	if err != nil || !on {
		return c
	}
	c.Impersonating = true
	if p, err := rn.sessions.Profile(ctx, sid); err == nil && p != nil {
		c.SuperAdminName = p.SuperAdminName
		if c.SuperAdminName == "" {
			c.SuperAdminName = p.Name
		}
		c.SuperAdminEmail = p.SuperAdminEmail
		if c.SuperAdminEmail == "" {
			c.SuperAdminEmail = p.Email
		}
	}
	return c
}

// Holding renders the full-screen "checking session" page the guard shows
// instead of protected content.
func (rn *Renderer) Holding() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rn.Render(w, "holding", Chrome{Title: "PromoHatt"})
	})
}
