package handler

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"dashboard-service/internal/guard"
	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

// AuthHandler serves the sign-in, sign-up and logout pages for all three
// roles. The OTP flow is two steps: request a code by email, then verify it
// for a bearer token that goes into the session store.
type AuthHandler struct {
	api      *upstream.Client
	sessions session.Repository
	render   *Renderer
	logger   *zap.Logger
}

func NewAuthHandler(api *upstream.Client, sessions session.Repository, render *Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions, render: render, logger: logger}
}

type signInPage struct {
	Page
	Email        string
	OtpSent      bool
	SendAction   string
	VerifyAction string
}

type signUpPage struct {
	Page
	ReferralCode string
}

// signInFlow holds the role-specific bits of the shared OTP flow. The admin
// role has its own pair of upstream endpoints; user and therapist share the
// generic ones.
type signInFlow struct {
	cfg      guard.RoleConfig
	title    string
	sendFn   func(h *AuthHandler, ctx context.Context, email string) (string, error)
	verifyFn func(h *AuthHandler, ctx context.Context, email, otp string) (string, error)
}

func userFlow() signInFlow {
	return signInFlow{
		cfg:   guard.UserRole(),
		title: "Sign in",
		sendFn: func(h *AuthHandler, ctx context.Context, email string) (string, error) {
			return h.api.SignIn(ctx, email, "user")
		},
		verifyFn: func(h *AuthHandler, ctx context.Context, email, otp string) (string, error) {
			return h.api.VerifyAccount(ctx, email, "user", otp)
		},
	}
}

func adminFlow() signInFlow {
	return signInFlow{
		cfg:   guard.AdminRole(),
		title: "Admin sign in",
		sendFn: func(h *AuthHandler, ctx context.Context, email string) (string, error) {
			return h.api.AdminSignIn(ctx, email)
		},
		verifyFn: func(h *AuthHandler, ctx context.Context, email, otp string) (string, error) {
			return h.api.AdminVerifyAccount(ctx, email, otp)
		},
	}
}

func therapistFlow() signInFlow {
	return signInFlow{
		cfg:   guard.TherapistRole(),
		title: "Supervisor sign in",
		sendFn: func(h *AuthHandler, ctx context.Context, email string) (string, error) {
			return h.api.SignIn(ctx, email, "therapist")
		},
		verifyFn: func(h *AuthHandler, ctx context.Context, email, otp string) (string, error) {
			return h.api.VerifyAccount(ctx, email, "therapist", otp)
		},
	}
}

func (h *AuthHandler) page(r *http.Request, f signInFlow) signInPage {
	return signInPage{
		Page:         Page{Chrome: h.render.Chrome(r.Context(), f.title, f.cfg.Role)},
		SendAction:   f.cfg.SignInPath + "/otp",
		VerifyAction: f.cfg.SignInPath + "/verify",
	}
}

func (h *AuthHandler) showSignIn(w http.ResponseWriter, r *http.Request, f signInFlow) {
	p := h.page(r, f)
	p.Email = r.URL.Query().Get("email")
	h.render.Render(w, "signin", p)
}

func (h *AuthHandler) sendOTP(w http.ResponseWriter, r *http.Request, f signInFlow) {
	p := h.page(r, f)
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	p.Email = email

	if email == "" {
		p.Error = "Please enter your email."
		h.render.Render(w, "signin", p)
		return
	}

	msg, err := f.sendFn(h, r.Context(), email)
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to send OTP")
		h.render.Render(w, "signin", p)
		return
	}

	p.OtpSent = true
	p.Message = msg
	if p.Message == "" {
		p.Message = "OTP sent! Please check your email."
	}
	h.render.Render(w, "signin", p)
}

func (h *AuthHandler) verifyOTP(w http.ResponseWriter, r *http.Request, f signInFlow) {
	p := h.page(r, f)
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	otp := strings.TrimSpace(r.FormValue("otp"))
	p.Email = email
	p.OtpSent = true

	token, err := f.verifyFn(h, r.Context(), email, otp)
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "OTP verification failed")
		h.render.Render(w, "signin", p)
		return
	}

	sid := session.FromContext(r.Context())
	if err := h.sessions.SetToken(r.Context(), sid, f.cfg.TokenKey, token); err != nil {
		h.logger.Error("persist token failed", zap.String("role", f.cfg.Role), zap.Error(err))
		p.Error = "Could not start your session. Please try again."
		h.render.Render(w, "signin", p)
		return
	}

	http.Redirect(w, r, f.cfg.HomePath, http.StatusFound)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request, f signInFlow) {
	ctx := r.Context()
	sid := session.FromContext(ctx)
	if err := h.sessions.DeleteToken(ctx, sid, f.cfg.TokenKey); err != nil {
		h.logger.Warn("logout cleanup failed", zap.String("role", f.cfg.Role), zap.Error(err))
	}
	if f.cfg.Role == "user" {
		// Leaving the user dashboard also ends any super-admin impersonation.
		_ = h.sessions.SetImpersonating(ctx, sid, false)
	}
	http.Redirect(w, r, f.cfg.SignInPath, http.StatusFound)
}

// User role.
func (h *AuthHandler) UserSignInPage(w http.ResponseWriter, r *http.Request) {
	h.showSignIn(w, r, userFlow())
}
func (h *AuthHandler) UserSendOTP(w http.ResponseWriter, r *http.Request) {
	h.sendOTP(w, r, userFlow())
}
func (h *AuthHandler) UserVerifyOTP(w http.ResponseWriter, r *http.Request) {
	h.verifyOTP(w, r, userFlow())
}
func (h *AuthHandler) UserLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r, userFlow())
}

// Admin role.
func (h *AuthHandler) AdminSignInPage(w http.ResponseWriter, r *http.Request) {
	h.showSignIn(w, r, adminFlow())
}
func (h *AuthHandler) AdminSendOTP(w http.ResponseWriter, r *http.Request) {
	h.sendOTP(w, r, adminFlow())
}
func (h *AuthHandler) AdminVerifyOTP(w http.ResponseWriter, r *http.Request) {
	h.verifyOTP(w, r, adminFlow())
}
func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r, adminFlow())
}

// Therapist role.
func (h *AuthHandler) TherapistSignInPage(w http.ResponseWriter, r *http.Request) {
	h.showSignIn(w, r, therapistFlow())
}
func (h *AuthHandler) TherapistSendOTP(w http.ResponseWriter, r *http.Request) {
	h.sendOTP(w, r, therapistFlow())
}
func (h *AuthHandler) TherapistVerifyOTP(w http.ResponseWriter, r *http.Request) {
	h.verifyOTP(w, r, therapistFlow())
}
func (h *AuthHandler) TherapistLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r, therapistFlow())
}

// Sign-up.
func (h *AuthHandler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	p := signUpPage{
		Page:         Page{Chrome: h.render.Chrome(r.Context(), "Sign up", "user")},
		ReferralCode: r.URL.Query().Get("ref"),
	}
	h.render.Render(w, "signup", p)
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	p := signUpPage{
		Page:         Page{Chrome: h.render.Chrome(r.Context(), "Sign up", "user")},
		ReferralCode: strings.TrimSpace(r.FormValue("referralCode")),
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	phone := strings.TrimSpace(r.FormValue("phone"))

	if name == "" || email == "" {
		p.Error = "Name and email are required."
		h.render.Render(w, "signup", p)
		return
	}

	msg, err := h.api.SignUp(r.Context(), name, email, phone, p.ReferralCode)
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Sign up failed")
		h.render.Render(w, "signup", p)
		return
	}

	sp := h.page(r, userFlow())
	sp.Email = email
	sp.Message = msg
	if sp.Message == "" {
		sp.Message = "Account created. Sign in to continue."
	}
	h.render.Render(w, "signin", sp)
}

// Home serves the public landing page.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "home", Page{Chrome: h.render.Chrome(r.Context(), "PromoHatt", "")})
}
