package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dashboard-service/internal/guard"
	"dashboard-service/internal/handler"
	"dashboard-service/internal/middleware"
	"dashboard-service/internal/session"
)

// Handlers collects the page handlers the route table wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Admin      *handler.AdminHandler
	Therapist  *handler.TherapistHandler
	Onboarding *handler.OnboardingHandler
}

// Guards holds the per-role route guards.
type Guards struct {
	User      *guard.Guard
	Admin     *guard.Guard
	Therapist *guard.Guard
}

func SetupRoutes(
	r chi.Router,
	h Handlers,
	g Guards,
	rdb *redis.Client,
	logger *zap.Logger,
) chi.Router {
	// ---- Global Middleware ----
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestLogger(logger))
	r.Use(session.EnsureCookie)

	// Global rate limiting
	r.Use(middleware.RateLimiter(rdb, 300, time.Minute, 10*time.Minute, "global"))

	// ============================================================
	// Public pages
	// ============================================================
	r.Get("/", h.Auth.Home)
	r.Get("/signup", h.Auth.SignUpPage)
	r.Post("/signup", h.Auth.SignUp)

	// Sign-in pages sit behind the guard so an already-authenticated
	// session is bounced straight to its home page.
	r.Group(func(pr chi.Router) {
		pr.Use(g.User.Protect)
		pr.Get("/signin", h.Auth.UserSignInPage)
	})
	r.Post("/signin/otp", h.Auth.UserSendOTP)
	r.Post("/signin/verify", h.Auth.UserVerifyOTP)

	r.Group(func(pr chi.Router) {
		pr.Use(g.Admin.Protect)
		pr.Get("/admin/signin", h.Auth.AdminSignInPage)
	})
	r.Post("/admin/signin/otp", h.Auth.AdminSendOTP)
	r.Post("/admin/signin/verify", h.Auth.AdminVerifyOTP)

	r.Group(func(pr chi.Router) {
		pr.Use(g.Therapist.Protect)
		pr.Get("/therapist/signin", h.Auth.TherapistSignInPage)
	})
	r.Post("/therapist/signin/otp", h.Auth.TherapistSendOTP)
	r.Post("/therapist/signin/verify", h.Auth.TherapistVerifyOTP)

	// ============================================================
	// Onboarding pages (reached via guard redirects; no guard of
	// their own so a mid-onboarding account can still load them)
	// ============================================================
	r.Get("/complete-kyc", h.Onboarding.CompleteKYC)
	r.Post("/complete-kyc", h.Onboarding.SubmitKYC)
	r.Get("/kyc-pending", h.Onboarding.KYCPending)
	r.Post("/kyc-pending/logout", h.Onboarding.KYCPendingLogout)
	r.Get("/purchase-package", h.Onboarding.PurchasePackage)
	r.Post("/purchase-package/order", h.Onboarding.CreateOrder)
	r.Post("/payment/callback", h.Onboarding.PaymentCallback)
	r.Get("/complete-parent-profile", h.Onboarding.CompleteParentProfile)
	r.Post("/complete-parent-profile", h.Onboarding.SubmitParentProfile)
	r.Get("/therapist/complete-profile", h.Onboarding.CompleteTherapistProfile)
	r.Post("/therapist/complete-profile", h.Onboarding.SubmitTherapistProfile)
	r.Get("/therapist/pending-approval", h.Onboarding.TherapistPendingApproval)
	r.Post("/therapist/pending-approval/logout", h.Onboarding.TherapistPendingLogout)

	// ============================================================
	// Parent dashboard
	// ============================================================
	r.Group(func(pr chi.Router) {
		pr.Use(g.User.Protect)

		pr.Get("/user", h.User.Dashboard)
		pr.Get("/tasks", h.User.Tasks)
		pr.Post("/tasks/complete", h.User.CompleteTask)
		pr.Get("/referral", h.User.Referrals)
		pr.Get("/promotional-page", h.User.PromotionalIncome)
		pr.Get("/rewards", h.User.Rewards)
		pr.Get("/wallet-history", h.User.Wallet)
		pr.Get("/user/profile", h.User.Profile)
		pr.Get("/user/logout", h.Auth.UserLogout)
		pr.Post("/user/logout", h.Auth.UserLogout)
	})

	// ============================================================
	// Admin dashboard
	// ============================================================
	r.Group(func(pr chi.Router) {
		pr.Use(g.Admin.Protect)

		pr.Route("/admin", func(ar chi.Router) {
			ar.Get("/", h.Admin.Home)
			ar.Get("/all-users", h.Admin.Users)
			ar.Post("/users/kyc/approve", h.Admin.ApproveKYC)
			ar.Post("/users/kyc/approve-all", h.Admin.ApproveAllKYC)
			ar.Post("/users/kyc/auto-approve", h.Admin.SetKYCAutoApprove)

			ar.Get("/user-tree", h.Admin.Tree)
			ar.Get("/user-tree/{id}", h.Admin.Tree)

			ar.Get("/manage-task", h.Admin.Tasks)
			ar.Post("/manage-task", h.Admin.CreateTask)
			ar.Post("/manage-task/bulk", h.Admin.CreateTasksBulk)
			ar.Post("/manage-task/delete", h.Admin.DeleteTask)
			ar.Post("/manage-task/delete-selected", h.Admin.DeleteSelectedTasks)
			ar.Post("/manage-task/delete-all", h.Admin.DeleteAllTasks)

			ar.Get("/manage-packages", h.Admin.Packages)
			ar.Post("/manage-packages", h.Admin.CreatePackage)
			ar.Post("/manage-packages/delete", h.Admin.DeletePackage)

			ar.Get("/finances", h.Admin.Payments)
			ar.Get("/profile", h.Admin.Profile)
			ar.Get("/logout", h.Auth.AdminLogout)
			ar.Post("/logout", h.Auth.AdminLogout)
		})
	})

	// ============================================================
	// Supervisor dashboard
	// ============================================================
	r.Group(func(pr chi.Router) {
		pr.Use(g.Therapist.Protect)

		pr.Get("/therapist", h.Therapist.Home)
		pr.Get("/therapist/profile", h.Therapist.Profile)
		pr.Get("/therapist/logout", h.Auth.TherapistLogout)
		pr.Post("/therapist/logout", h.Auth.TherapistLogout)
	})

	return r
}
