package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

func newOnboardingHandler(t *testing.T, api *httptest.Server) (*OnboardingHandler, *session.MemoryStore) {
	t.Helper()
	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.SetToken(context.Background(), testSID, session.UserTokenKey, "tok"))
	h := NewOnboardingHandler(upstream.NewClient(api.URL), sessions, newTestRenderer(t, sessions), zap.NewNop(), "rzp_test_key")
	return h, sessions
}

func kycForm(t *testing.T, ext string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("aadharNumber", "123412341234"))
	require.NoError(t, mw.WriteField("panNumber", "ABCDE1234F"))
	for _, field := range []string{"aadharFrontFile", "aadharBackFile", "panFile"} {
		part, err := mw.CreateFormFile(field, field+ext)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSubmitKYCRejectsUnsupportedFileType(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for a rejected upload")
	}))
	defer api.Close()

	h, _ := newOnboardingHandler(t, api)

	body, contentType := kycForm(t, ".pdf")
	req := httptest.NewRequest(http.MethodPost, "/complete-kyc", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(session.WithID(req.Context(), testSID))

	rec := httptest.NewRecorder()
	h.SubmitKYC(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only JPEG, JPG and PNG files are accepted.")
}

func TestSubmitKYCRelaysUploadAndRedirectsToPending(t *testing.T) {
	var gotAadhar string
	var gotFiles []string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/kyc/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotAadhar = r.FormValue("aadharNumber")
		for field := range r.MultipartForm.File {
			gotFiles = append(gotFiles, field)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer api.Close()

	h, _ := newOnboardingHandler(t, api)

	body, contentType := kycForm(t, ".png")
	req := httptest.NewRequest(http.MethodPost, "/complete-kyc", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(session.WithID(req.Context(), testSID))

	rec := httptest.NewRecorder()
	h.SubmitKYC(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/kyc-pending", rec.Header().Get("Location"))
	assert.Equal(t, "123412341234", gotAadhar)
	assert.ElementsMatch(t, []string{"aadharFrontFile", "aadharBackFile", "panFile"}, gotFiles)
}

func TestKYCPendingLogoutClearsUserToken(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer api.Close()

	h, sessions := newOnboardingHandler(t, api)

	rec := httptest.NewRecorder()
	h.KYCPendingLogout(rec, sessionRequest(http.MethodPost, "/kyc-pending/logout"))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))

	tok, _ := sessions.Token(context.Background(), testSID, session.UserTokenKey)
	assert.Empty(t, tok)
}

func TestCreateOrderRendersCheckoutWidget(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment/create-order", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"order":{"id":"order_9","amount":49900,"currency":"INR"},"paymentId":"pay_rec_1"}`))
	}))
	defer api.Close()

	h, _ := newOnboardingHandler(t, api)

	req := sessionRequest(http.MethodPost, "/purchase-package/order")
	req.PostForm = map[string][]string{"packageId": {"pkg1"}}
	rec := httptest.NewRecorder()
	h.CreateOrder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "order_9")
	assert.Contains(t, body, "pay_rec_1")
	assert.Contains(t, body, "rzp_test_key")
	assert.Contains(t, body, `action="/payment/callback"`)
}

func TestPaymentCallbackVerifiesAndRedirectsHome(t *testing.T) {
	var gotBody []byte
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment/verify-payment", r.URL.Path)
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		gotBody = buf.Bytes()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer api.Close()

	h, _ := newOnboardingHandler(t, api)

	req := sessionRequest(http.MethodPost, "/payment/callback")
	req.PostForm = map[string][]string{
		"razorpay_order_id":   {"order_9"},
		"razorpay_payment_id": {"pay_9"},
		"razorpay_signature":  {"sig"},
		"paymentId":           {"pay_rec_1"},
	}
	rec := httptest.NewRecorder()
	h.PaymentCallback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/user", rec.Header().Get("Location"))
	assert.Contains(t, string(gotBody), `"razorpay_order_id":"order_9"`)
	assert.Contains(t, string(gotBody), `"paymentId":"pay_rec_1"`)
}

func TestPaymentCallbackFailureReturnsToPackages(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer api.Close()

	h, _ := newOnboardingHandler(t, api)

	req := sessionRequest(http.MethodPost, "/payment/callback")
	req.PostForm = map[string][]string{"paymentId": {"pay_rec_1"}}
	rec := httptest.NewRecorder()
	h.PaymentCallback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/purchase-package?error=")
}
