package guard

import "dashboard-service/internal/session"

// Role configs mirror the platform's three dashboards. Paths are part of the
// product's URL contract; onboarding targets for user and admin are the
// shared global pages, the therapist flow has its own.

func UserRole() RoleConfig {
	return RoleConfig{
		Role:            "user",
		TokenKey:        session.UserTokenKey,
		ProtectedPrefix: "/user",
		SignInPath:      "/signin",
		HomePath:        "/user",
		KycPath:         "/complete-kyc",
		KycPendingPath:  "/kyc-pending",
		PackagePath:     "/purchase-package",
		ProfilePath:     "/complete-parent-profile",
	}
}

func AdminRole() RoleConfig {
	return RoleConfig{
		Role:            "admin",
		TokenKey:        session.AdminTokenKey,
		ProtectedPrefix: "/admin",
		SignInPath:      "/admin/signin",
		HomePath:        "/admin",
		KycPath:         "/complete-kyc",
		KycPendingPath:  "/kyc-pending",
		PackagePath:     "/purchase-package",
		ProfilePath:     "/complete-parent-profile",
	}
}

func TherapistRole() RoleConfig {
	return RoleConfig{
		Role:            "therapist",
		TokenKey:        session.TherapistTokenKey,
		ProtectedPrefix: "/therapist",
		SignInPath:      "/therapist/signin",
		HomePath:        "/therapist",
		KycPath:         "/complete-kyc",
		KycPendingPath:  "/therapist/pending-approval",
		PackagePath:     "/purchase-package",
		ProfilePath:     "/therapist/complete-profile",
	}
}
