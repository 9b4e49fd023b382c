package handler

import (
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

// OnboardingHandler serves the pages the route guard redirects to: KYC
// upload, the pending screen, package purchase with checkout, and the
// complete-profile forms for parents and supervisors.
type OnboardingHandler struct {
	api           *upstream.Client
	sessions      session.Repository
	render        *Renderer
	logger        *zap.Logger
	razorpayKeyID string
}

func NewOnboardingHandler(api *upstream.Client, sessions session.Repository, render *Renderer, logger *zap.Logger, razorpayKeyID string) *OnboardingHandler {
	return &OnboardingHandler{api: api, sessions: sessions, render: render, logger: logger, razorpayKeyID: razorpayKeyID}
}

func (h *OnboardingHandler) token(r *http.Request, key string) string {
	sid := session.FromContext(r.Context())
	token, err := h.sessions.Token(r.Context(), sid, key)
	if err != nil {
		h.logger.Error("session read failed", zap.Error(err))
	}
	return token
}

type kycPage struct {
	Page
	Name  string
	Email string
}

func (h *OnboardingHandler) CompleteKYC(w http.ResponseWriter, r *http.Request) {
	p := kycPage{
		Page:  Page{Chrome: h.render.Chrome(r.Context(), "Complete KYC", "user")},
		Name:  r.URL.Query().Get("name"),
		Email: r.URL.Query().Get("email"),
	}
	p.Error = r.URL.Query().Get("error")
	h.render.Render(w, "complete_kyc", p)
}

var kycFileExts = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}

func readKYCFile(r *http.Request, field string) (*upstream.KYCUploadFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if !kycFileExts[strings.ToLower(filepath.Ext(header.Filename))] {
		return nil, &unsupportedFileError{Filename: header.Filename}
	}

	content, err := io.ReadAll(io.LimitReader(file, 10<<20))
	if err != nil {
		return nil, err
	}
	return &upstream.KYCUploadFile{Field: field, Filename: header.Filename, Content: content}, nil
}

type unsupportedFileError struct{ Filename string }

func (e *unsupportedFileError) Error() string {
	return "unsupported file type: " + e.Filename
}

// SubmitKYC validates the three document uploads and relays them upstream.
func (h *OnboardingHandler) SubmitKYC(w http.ResponseWriter, r *http.Request) {
	p := kycPage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Complete KYC", "user")}}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		p.Error = "Could not read the uploaded documents."
		h.render.Render(w, "complete_kyc", p)
		return
	}

	aadharNumber := strings.TrimSpace(r.FormValue("aadharNumber"))
	panNumber := strings.TrimSpace(r.FormValue("panNumber"))
	if aadharNumber == "" || panNumber == "" {
		p.Error = "Aadhar and PAN numbers are required."
		h.render.Render(w, "complete_kyc", p)
		return
	}

	var files []upstream.KYCUploadFile
	for _, field := range []string{"aadharFrontFile", "aadharBackFile", "panFile"} {
		f, err := readKYCFile(r, field)
		if err != nil {
			if _, ok := err.(*unsupportedFileError); ok {
				p.Error = "Only JPEG, JPG and PNG files are accepted."
			} else {
				p.Error = "All three documents are required."
			}
			h.render.Render(w, "complete_kyc", p)
			return
		}
		files = append(files, *f)
	}

	token := h.token(r, session.UserTokenKey)
	if err := h.api.UploadKYC(r.Context(), token, aadharNumber, panNumber, files); err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to submit KYC documents")
		h.render.Render(w, "complete_kyc", p)
		return
	}

	http.Redirect(w, r, "/kyc-pending", http.StatusFound)
}

type kycPendingPage struct {
	Page
	Heading      string
	Info         string
	Name         string
	Email        string
	KycStatus    string
	LogoutAction string
}

func (h *OnboardingHandler) KYCPending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := kycPendingPage{
		Page:         Page{Chrome: h.render.Chrome(r.Context(), "KYC Pending", "user")},
		Info:         q.Get("message"),
		Name:         q.Get("name"),
		Email:        q.Get("email"),
		KycStatus:    q.Get("kycStatus"),
		LogoutAction: "/kyc-pending/logout",
	}
	if p.KycStatus == "rejected" {
		p.Heading = "KYC rejected"
	}
	h.render.Render(w, "kyc_pending", p)
}

// KYCPendingLogout ends the stuck session so a different account can sign in.
func (h *OnboardingHandler) KYCPendingLogout(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())
	if err := h.sessions.DeleteToken(r.Context(), sid, session.UserTokenKey); err != nil {
		h.logger.Warn("logout cleanup failed", zap.Error(err))
	}
	http.Redirect(w, r, "/signin", http.StatusFound)
}

type purchasePage struct {
	Page
	Info     string
	Packages []upstream.Package
}

func (h *OnboardingHandler) PurchasePackage(w http.ResponseWriter, r *http.Request) {
	p := purchasePage{
		Page: Page{Chrome: h.render.Chrome(r.Context(), "Purchase Package", "user")},
		Info: r.URL.Query().Get("message"),
	}
	p.Error = r.URL.Query().Get("error")

	pkgs, err := h.api.UserPackages(r.Context(), h.token(r, session.UserTokenKey))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load packages")
	} else {
		p.Packages = pkgs
	}
	h.render.Render(w, "purchase_package", p)
}

type checkoutPage struct {
	Page
	Order     *upstream.Order
	PaymentID string
	Key       string
}

// CreateOrder opens a gateway order for the chosen package and renders the
// checkout widget page.
func (h *OnboardingHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	packageID := r.FormValue("packageId")
	if packageID == "" {
		http.Redirect(w, r, "/purchase-package", http.StatusFound)
		return
	}

	order, paymentID, err := h.api.CreateOrder(r.Context(), h.token(r, session.UserTokenKey), packageID)
	if err != nil {
		msg := upstream.ErrorMessage(err, "Failed to start the payment")
		http.Redirect(w, r, "/purchase-package?error="+url.QueryEscape(msg), http.StatusFound)
		return
	}

	p := checkoutPage{
		Page:      Page{Chrome: h.render.Chrome(r.Context(), "Checkout", "user")},
		Order:     order,
		PaymentID: paymentID,
		Key:       h.razorpayKeyID,
	}
	h.render.Render(w, "checkout", p)
}

// PaymentCallback receives the widget's completion fields and asks the
// platform to verify the signature.
func (h *OnboardingHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	req := upstream.VerifyPaymentRequest{
		RazorpayOrderID:   r.FormValue("razorpay_order_id"),
		RazorpayPaymentID: r.FormValue("razorpay_payment_id"),
		RazorpaySignature: r.FormValue("razorpay_signature"),
		PaymentID:         r.FormValue("paymentId"),
	}

	ok, err := h.api.VerifyPayment(r.Context(), h.token(r, session.UserTokenKey), req)
	if err != nil || !ok {
		if err != nil {
			h.logger.Warn("payment verification failed", zap.String("order_id", req.RazorpayOrderID), zap.Error(err))
		}
		http.Redirect(w, r, "/purchase-package?error=Payment+verification+failed", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/user", http.StatusFound)
}

type completeProfilePage struct {
	Page
	Heading string
	Action  string
	Name    string
	Email   string
}

func (h *OnboardingHandler) completeProfileForm(w http.ResponseWriter, r *http.Request, heading, action string) {
	p := completeProfilePage{
		Page:    Page{Chrome: h.render.Chrome(r.Context(), heading, "user")},
		Heading: heading,
		Action:  action,
		Name:    r.URL.Query().Get("name"),
		Email:   r.URL.Query().Get("email"),
	}
	p.Error = r.URL.Query().Get("error")
	h.render.Render(w, "complete_profile", p)
}

func (h *OnboardingHandler) submitProfile(w http.ResponseWriter, r *http.Request, tokenKey, action, home string) {
	fields := map[string]string{}
	for _, name := range []string{"name", "email", "phone", "street", "city", "state", "postalCode", "country"} {
		if v := strings.TrimSpace(r.FormValue(name)); v != "" {
			fields[name] = v
		}
	}

	if err := h.api.UpdateProfile(r.Context(), h.token(r, tokenKey), fields); err != nil {
		msg := upstream.ErrorMessage(err, "Failed to save the profile")
		http.Redirect(w, r, action+"?error="+url.QueryEscape(msg), http.StatusFound)
		return
	}
	http.Redirect(w, r, home, http.StatusFound)
}

// Parent onboarding.
func (h *OnboardingHandler) CompleteParentProfile(w http.ResponseWriter, r *http.Request) {
	h.completeProfileForm(w, r, "Complete your profile", "/complete-parent-profile")
}
func (h *OnboardingHandler) SubmitParentProfile(w http.ResponseWriter, r *http.Request) {
	h.submitProfile(w, r, session.UserTokenKey, "/complete-parent-profile", "/user")
}

// Supervisor onboarding.
func (h *OnboardingHandler) CompleteTherapistProfile(w http.ResponseWriter, r *http.Request) {
	h.completeProfileForm(w, r, "Complete your supervisor profile", "/therapist/complete-profile")
}
func (h *OnboardingHandler) SubmitTherapistProfile(w http.ResponseWriter, r *http.Request) {
	h.submitProfile(w, r, session.TherapistTokenKey, "/therapist/complete-profile", "/therapist")
}

func (h *OnboardingHandler) TherapistPendingApproval(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := kycPendingPage{
		Page:         Page{Chrome: h.render.Chrome(r.Context(), "Approval Pending", "therapist")},
		Heading:      "Approval pending",
		Info:         q.Get("message"),
		Name:         q.Get("name"),
		Email:        q.Get("email"),
		KycStatus:    q.Get("kycStatus"),
		LogoutAction: "/therapist/pending-approval/logout",
	}
	if p.Info == "" {
		p.Info = "Your supervisor account is awaiting approval. You will be able to continue once it is reviewed."
	}
	h.render.Render(w, "kyc_pending", p)
}

func (h *OnboardingHandler) TherapistPendingLogout(w http.ResponseWriter, r *http.Request) {
	sid := session.FromContext(r.Context())
	if err := h.sessions.DeleteToken(r.Context(), sid, session.TherapistTokenKey); err != nil {
		h.logger.Warn("logout cleanup failed", zap.Error(err))
	}
	http.Redirect(w, r, "/therapist/signin", http.StatusFound)
}
