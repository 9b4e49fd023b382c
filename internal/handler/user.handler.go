package handler

import (
	"net/http"

	"go.uber.org/zap"

	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

// UserHandler serves the parent-facing pages: dashboard tiles, weekly tasks,
// referrals, payout history, wallet and profile.
type UserHandler struct {
	api      *upstream.Client
	sessions session.Repository
	render   *Renderer
	logger   *zap.Logger
}

func NewUserHandler(api *upstream.Client, sessions session.Repository, render *Renderer, logger *zap.Logger) *UserHandler {
	return &UserHandler{api: api, sessions: sessions, render: render, logger: logger}
}

func (h *UserHandler) token(r *http.Request) string {
	sid := session.FromContext(r.Context())
	token, err := h.sessions.Token(r.Context(), sid, session.UserTokenKey)
	if err != nil {
		h.logger.Error("session read failed", zap.Error(err))
	}
	return token
}

type dashboardPage struct {
	Page
	Data *upstream.DashboardData
}

func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p := dashboardPage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Dashboard", "user")}}

	data, err := h.api.Dashboard(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load dashboard")
	} else {
		p.Data = data
	}
	h.render.Render(w, "user_dashboard", p)
}

type tasksPage struct {
	Page
	Tasks []upstream.Task
}

func (h *UserHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	p := tasksPage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Weekly Tasks", "user")}}
	p.Message = r.URL.Query().Get("message")

	tasks, msg, err := h.api.UserTasks(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load tasks")
	} else {
		p.Tasks = tasks
		if p.Message == "" {
			p.Message = msg
		}
	}
	h.render.Render(w, "user_tasks", p)
}

func (h *UserHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.FormValue("taskId")
	if taskID != "" {
		if err := h.api.CompleteTask(r.Context(), h.token(r), taskID); err != nil {
			h.logger.Warn("complete task failed", zap.String("task_id", taskID), zap.Error(err))
		}
	}
	// Redirect-after-POST: the reload refetches the list with the new state.
	http.Redirect(w, r, "/tasks", http.StatusFound)
}

type referralsPage struct {
	Page
	Data     *upstream.ReferralData
	Referred []upstream.ReferredUser
	Side     string
}

func (h *UserHandler) Referrals(w http.ResponseWriter, r *http.Request) {
	p := referralsPage{
		Page: Page{Chrome: h.render.Chrome(r.Context(), "Referrals", "user")},
		Side: r.URL.Query().Get("side"),
	}

	data, err := h.api.ReferralPage(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load referrals")
		h.render.Render(w, "referrals", p)
		return
	}

	p.Data = data
	switch p.Side {
	case "left", "right":
		for _, u := range data.ReferredUsers {
			if u.ReferredOn == p.Side {
				p.Referred = append(p.Referred, u)
			}
		}
	default:
		p.Referred = data.ReferredUsers
	}
	h.render.Render(w, "referrals", p)
}

type promotionalIncomePage struct {
	Page
	Weeks      []upstream.WeekRecord
	LeftCarry  float64
	RightCarry float64
}

func (h *UserHandler) PromotionalIncome(w http.ResponseWriter, r *http.Request) {
	p := promotionalIncomePage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Promotional Income", "user")}}

	data, err := h.api.PromotionalIncome(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load promotional income")
	} else {
		p.Weeks = data.Weeks
		p.LeftCarry = data.LeftCarry
		p.RightCarry = data.RightCarry
	}
	h.render.Render(w, "promotional_income", p)
}

func (h *UserHandler) Rewards(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "rewards", Page{Chrome: h.render.Chrome(r.Context(), "Rewards", "user")})
}

type walletPage struct {
	Page
	Data *upstream.WalletData
}

func (h *UserHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	p := walletPage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Wallet", "user")}}

	data, err := h.api.WalletHistory(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load wallet history")
	} else {
		p.Data = data
	}
	h.render.Render(w, "wallet", p)
}

type profilePage struct {
	Page
	Data *upstream.UserProfile
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p := profilePage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Profile", "user")}}

	data, err := h.api.Profile(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load profile")
	} else {
		p.Data = data
	}
	h.render.Render(w, "profile", p)
}
