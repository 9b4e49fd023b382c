package guard

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

// RoleConfig parameterizes one role's gate: where its token lives, what role
// tag the probe sends, and where each outcome redirects.
type RoleConfig struct {
	Role            string
	TokenKey        string
	ProtectedPrefix string
	SignInPath      string
	HomePath        string

	KycPath        string
	KycPendingPath string
	PackagePath    string
	ProfilePath    string
}

// Guard gates a role's routes. One implementation, three configs.
type Guard struct {
	cfg      RoleConfig
	sessions session.Repository
	probe    *upstream.Client
	logger   *zap.Logger

	holding http.Handler
}

func New(cfg RoleConfig, sessions session.Repository, probe *upstream.Client, logger *zap.Logger, holding http.Handler) *Guard {
	if holding == nil {
		holding = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("Checking session..."))
		})
	}
	return &Guard{cfg: cfg, sessions: sessions, probe: probe, logger: logger, holding: holding}
}

// Protect wraps a role's routes. Protected content is never served before the
// probe confirms Authenticated; the sign-in path is the one exception, serving
// its form for any unconfirmed session so the flow can restart.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := session.FromContext(ctx)

		token, err := g.sessions.Token(ctx, sid, g.cfg.TokenKey)
		if err != nil {
			g.logger.Error("session read failed", zap.String("role", g.cfg.Role), zap.Error(err))
			token = ""
		}

		onSignIn := r.URL.Path == g.cfg.SignInPath

		if token == "" {
			// The sign-in form always renders for a tokenless visitor; it
			// cannot redirect to itself. No probe without a token; other
			// off-prefix paths hold instead of redirecting.
			if onSignIn {
				next.ServeHTTP(w, r)
				return
			}
			if strings.HasPrefix(r.URL.Path, g.cfg.ProtectedPrefix) {
				http.Redirect(w, r, g.cfg.SignInPath, http.StatusFound)
				return
			}
			g.holding.ServeHTTP(w, r)
			return
		}

		outcome := g.probe.CheckAuth(ctx, g.cfg.Role, token)

		if onSignIn {
			// Only a confirmed session gets bounced home, exactly once. Any
			// other outcome (stale token included) falls through to the form
			// so the visitor can sign in again.
			if outcome.Kind == upstream.Authenticated {
				http.Redirect(w, r, g.cfg.HomePath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		switch outcome.Kind {
		case upstream.Authenticated:
			next.ServeHTTP(w, r)

		case upstream.KycIncomplete:
			http.Redirect(w, r, buildRedirect(g.cfg.KycPath,
				param{"name", outcome.Name},
				param{"email", outcome.Email},
			), http.StatusFound)

		case upstream.KycPending:
			http.Redirect(w, r, buildRedirect(g.cfg.KycPendingPath,
				param{"message", outcome.Message},
				param{"kycStatus", outcome.KycStatus},
				param{"name", outcome.Name},
				param{"email", outcome.Email},
			), http.StatusFound)

		case upstream.PackageRequired:
			http.Redirect(w, r, buildRedirect(g.cfg.PackagePath,
				param{"message", outcome.Message},
				param{"name", outcome.Name},
				param{"email", outcome.Email},
			), http.StatusFound)

		case upstream.ProfileIncomplete:
			http.Redirect(w, r, buildRedirect(g.cfg.ProfilePath,
				param{"name", outcome.Name},
				param{"email", outcome.Email},
			), http.StatusFound)

		default:
			http.Redirect(w, r, g.cfg.SignInPath, http.StatusFound)
		}
	})
}

// Config returns the guard's role configuration.
func (g *Guard) Config() RoleConfig { return g.cfg }

type param struct {
	key   string
	value string
}

// buildRedirect appends params in the given order, skipping empty values and
// the "?" entirely when nothing survives. url.Values would sort keys, which
// the redirect contract forbids.
func buildRedirect(base string, params ...param) string {
	var parts []string
	for _, p := range params {
		if p.value == "" {
			continue
		}
		parts = append(parts, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}
	if len(parts) == 0 {
		return base
	}
	return base + "?" + strings.Join(parts, "&")
}
