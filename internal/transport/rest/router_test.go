package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filatei/btorestate/internal/adapter/memory"
	"github.com/filatei/btorestate/internal/adapter/objectstore"
	"github.com/filatei/btorestate/internal/auth"
	"github.com/filatei/btorestate/internal/config"
	"github.com/filatei/btorestate/internal/domain"
	"github.com/filatei/btorestate/internal/metrics"
	"github.com/filatei/btorestate/internal/service/membership"
	"github.com/filatei/btorestate/internal/service/notification"
	"github.com/filatei/btorestate/internal/service/payment"
	"github.com/filatei/btorestate/internal/transport/middleware"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

// bucket is a minimal object store that accepts PUTs.
type bucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *bucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.objects[r.URL.Path] = body
	b.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (b *bucket) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

type apiHarness struct {
	server *httptest.Server
	tokens *auth.JWTManager
	bucket *bucket
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	b := &bucket{objects: map[string][]byte{}}
	bucketSrv := httptest.NewServer(b)
	t.Cleanup(bucketSrv.Close)

	store := memory.NewStore()
	estates := memory.NewEstateRepo(store)
	tx := memory.NewTxManager(store, 20, 0)
	replay := memory.NewReplayStore(time.Hour)

	receiptsCfg := config.ReceiptsConfig{MaxBytes: 1024, UploadAttempts: 2, UploadBaseDelay: time.Millisecond}
	receipts := objectstore.New(config.ObjectStoreConfig{BaseURL: bucketSrv.URL + "/receipts", Timeout: 5 * time.Second}, 5, time.Second, log)

	inbox := notification.NewService(log, memory.NewNotificationRepo(store), config.NotificationsConfig{ListLimit: 50, MaxListLimit: 200, DispatchConcurrency: 4}, m)
	members := membership.NewService(log, estates, memory.NewAuditRepo(store), tx, replay, inbox, m)
	payments := payment.NewService(log, memory.NewChargeRepo(store), estates, tx, receipts, replay, inbox, receiptsCfg, m)
	tokens := auth.NewJWTManager(testSecret, "btorestate", time.Hour)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	router := NewRouter(RouterDeps{
		Log:           log,
		Metrics:       m,
		Gatherer:      reg,
		Tokens:        tokens,
		CORS:          config.CORSConfig{AllowedOrigins: "*"},
		RateLimiter:   limiter,
		RateLimit:     10000,
		Health:        NewHealthHandler("test", Component{Name: "database", Check: store, Critical: true}, Component{Name: "object_store", Check: receipts}),
		Estates:       NewEstateHandler(members, log),
		Charges:       NewChargeHandler(payments, receiptsCfg.MaxBytes, log),
		Notifications: NewNotificationHandler(inbox, log),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &apiHarness{server: srv, tokens: tokens, bucket: b}
}

type user struct {
	id    uuid.UUID
	token string
}

func (h *apiHarness) newUser(t *testing.T) user {
	t.Helper()
	id := uuid.New()
	token, err := h.tokens.GenerateAccessToken(id)
	require.NoError(t, err)
	return user{id: id, token: token}
}

type call struct {
	method      string
	path        string
	as          *user
	body        any
	rawBody     io.Reader
	contentType string
	key         string
}

func (h *apiHarness) do(t *testing.T, c call) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader = c.rawBody
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
		c.contentType = "application/json"
	}

	req, err := http.NewRequest(c.method, h.server.URL+c.path, body)
	require.NoError(t, err)
	if c.contentType != "" {
		req.Header.Set("Content-Type", c.contentType)
	}
	if c.as != nil {
		req.Header.Set("Authorization", "Bearer "+c.as.token)
	}
	if c.key != "" {
		req.Header.Set(IdempotencyKeyHeader, c.key)
	}

	resp, err := h.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (h *apiHarness) createEstate(t *testing.T, owner user) uuid.UUID {
	t.Helper()
	resp, raw := h.do(t, call{method: http.MethodPost, path: "/api/v1/estates", as: &owner, body: map[string]string{"name": "Palm Grove", "address": "1 Admiralty Way"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[transitionResponse](t, raw).Estate.ID
}

func (h *apiHarness) addMember(t *testing.T, estateID uuid.UUID, admin, u user) {
	t.Helper()
	resp, raw := h.do(t, call{method: http.MethodPost, path: "/api/v1/estates/" + estateID.String() + "/join-requests", as: &u})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	resp, raw = h.do(t, call{method: http.MethodPost, path: "/api/v1/estates/" + estateID.String() + "/join-requests/" + u.id.String() + "/approve", as: &admin})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
}

func receiptForm(t *testing.T, amount string, method domain.PaymentMethod, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("amount", amount))
	require.NoError(t, mw.WriteField("method", string(method)))
	if data != nil {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="receipt"; filename="bank transfer.png"`)
		hdr.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAPI_PaymentLifecycle(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)
	admin, payer := h.newUser(t), h.newUser(t)

	estateID := h.createEstate(t, admin)
	h.addMember(t, estateID, admin, payer)

	resp, raw := h.do(t, call{method: http.MethodPost, path: "/api/v1/estates/" + estateID.String() + "/charges", as: &admin, body: map[string]any{
		"title": "Security Levy", "amount": "10000", "dueDate": "2026-04-01",
	}})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	charge := decode[chargeResultResponse](t, raw).Charge
	assert.Equal(t, domain.ChargeStatusPending, charge.Status)
	chargePath := "/api/v1/charges/" + charge.ID.String()

	// A test payment that leaves a balance, then its retry.
	for i, want := range []int{http.StatusCreated, http.StatusOK} {
		resp, raw = h.do(t, call{method: http.MethodPost, path: chargePath + "/payments", as: &payer, key: "pay-1", body: map[string]any{"amount": 4000, "method": "test"}})
		require.Equal(t, want, resp.StatusCode, "attempt %d: %s", i, raw)
		got := decode[paymentResponse](t, raw)
		assert.Equal(t, i == 1, got.Replayed)
		assert.True(t, got.Charge.PaidAmount.Equal(decimal.NewFromInt(4000)))
		assert.Equal(t, domain.ChargeStatusPartial, got.Charge.Status)
	}

	// Overshooting the outstanding balance is an invalid amount.
	resp, raw = h.do(t, call{method: http.MethodPost, path: chargePath + "/payments", as: &payer, body: map[string]any{"amount": "7000", "method": "direct"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_amount", decode[errorResponse](t, raw).Code)

	// A manual payment without a receipt never reaches the store.
	body, ct := receiptForm(t, "6000", domain.PaymentMethodManual, nil)
	resp, raw = h.do(t, call{method: http.MethodPost, path: chargePath + "/payments", as: &payer, rawBody: body, contentType: ct})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Zero(t, h.bucket.len())

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	body, ct = receiptForm(t, "6000", domain.PaymentMethodManual, png)
	resp, raw = h.do(t, call{method: http.MethodPost, path: chargePath + "/payments", as: &payer, rawBody: body, contentType: ct})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	manual := decode[paymentResponse](t, raw)
	assert.Equal(t, domain.ChargeStatusReview, manual.Charge.Status)
	require.NotNil(t, manual.Entry.ReceiptURL)
	assert.Contains(t, *manual.Entry.ReceiptURL, "/receipts/"+estateID.String()+"/"+payer.id.String()+"/")
	assert.Equal(t, 1, h.bucket.len())

	// Only an admin may confirm.
	resp, _ = h.do(t, call{method: http.MethodPost, path: chargePath + "/confirm", as: &payer})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = h.do(t, call{method: http.MethodPost, path: chargePath + "/confirm", as: &admin})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	confirmed := decode[chargeResultResponse](t, raw)
	assert.Equal(t, domain.ChargeStatusPaid, confirmed.Charge.Status)
	assert.True(t, confirmed.Charge.Outstanding.IsZero())
	assert.Len(t, confirmed.Charge.PaymentHistory, 2)

	resp, raw = h.do(t, call{method: http.MethodGet, path: "/api/v1/charges/outstanding", as: &payer})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]chargeResponse](t, raw))

	resp, raw = h.do(t, call{method: http.MethodGet, path: "/api/v1/notifications", as: &payer})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var titles []string
	for _, n := range decode[[]notificationResponse](t, raw) {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, "Payment Confirmed")
	assert.Contains(t, titles, "Test Payment Processed")

	resp, raw = h.do(t, call{method: http.MethodGet, path: "/api/v1/notifications", as: &admin})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	titles = titles[:0]
	for _, n := range decode[[]notificationResponse](t, raw) {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, "Payment Receipt Uploaded")
	assert.NotContains(t, titles, "Payment Confirmed")
}

func TestAPI_MembershipFlow(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)
	creator, invitee := h.newUser(t), h.newUser(t)
	estateID := h.createEstate(t, creator)
	estatePath := "/api/v1/estates/" + estateID.String()

	// Scenario: the creator may not revoke their own admin role.
	resp, raw := h.do(t, call{method: http.MethodDelete, path: estatePath + "/admins/" + creator.id.String(), as: &creator})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "cannot change your own admin status", decode[errorResponse](t, raw).Error)

	resp, raw = h.do(t, call{method: http.MethodPost, path: estatePath + "/invites", as: &creator, body: map[string]string{"userId": invitee.id.String()}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	invited := decode[transitionResponse](t, raw)
	require.Len(t, invited.Notifications.Created, 1)
	assert.Len(t, invited.Estate.InviteTokens, 1)

	resp, raw = h.do(t, call{method: http.MethodGet, path: "/api/v1/notifications?unread=true", as: &invitee})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inbox := decode[[]notificationResponse](t, raw)
	require.Len(t, inbox, 1)
	require.NotNil(t, inbox[0].InviteToken)

	resp, raw = h.do(t, call{method: http.MethodGet, path: estatePath, as: &invitee})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[estateResponse](t, raw).InviteTokens, "tokens are admin-only")

	resp, raw = h.do(t, call{method: http.MethodPost, path: estatePath + "/invites/accept", as: &invitee, body: map[string]string{"token": "not-the-token"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "invalid_token", decode[errorResponse](t, raw).Code)

	resp, raw = h.do(t, call{method: http.MethodPost, path: estatePath + "/invites/accept", as: &invitee, body: map[string]string{"token": *inbox[0].InviteToken}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	accepted := decode[transitionResponse](t, raw)
	assert.Equal(t, 2, accepted.Estate.MemberCount)

	resp, raw = h.do(t, call{method: http.MethodGet, path: estatePath + "/relationship", as: &invitee})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.RelationshipMember, decode[relationshipResponse](t, raw).Relationship)

	resp, raw = h.do(t, call{method: http.MethodPost, path: "/api/v1/notifications/" + inbox[0].ID.String() + "/read", as: &invitee})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[notificationResponse](t, raw).Read)

	resp, raw = h.do(t, call{method: http.MethodGet, path: "/api/v1/notifications/unread-count", as: &invitee})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[unreadCountResponse](t, raw).Unread)

	resp, raw = h.do(t, call{method: http.MethodPost, path: estatePath + "/announcements", as: &creator, body: map[string]string{"message": "Gate closes at 10pm"}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Len(t, decode[transitionResponse](t, raw).Notifications.Created, 1)

	resp, raw = h.do(t, call{method: http.MethodPost, path: "/api/v1/notifications/read-all", as: &invitee})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[markAllReadResponse](t, raw).Updated)

	resp, _ = h.do(t, call{method: http.MethodPost, path: estatePath + "/leave", as: &invitee})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = h.do(t, call{method: http.MethodGet, path: estatePath + "/audit?limit=2", as: &creator})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	trail := decode[[]auditRecordResponse](t, raw)
	require.Len(t, trail, 2)
	assert.Equal(t, "membership.leave", trail[0].Action)
	assert.Equal(t, invitee.id, trail[0].SubjectID)
	assert.Equal(t, 1, trail[0].MemberCount)
	assert.Equal(t, "membership.accept_invite", trail[1].Action)

	resp, _ = h.do(t, call{method: http.MethodGet, path: estatePath + "/audit", as: &invitee})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = h.do(t, call{method: http.MethodGet, path: "/api/v1/estates/discover?search=palm", as: &invitee})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]estateResponse](t, raw), 1)
}

func TestAPI_IdempotentJoinRequest(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)
	creator, requester := h.newUser(t), h.newUser(t)
	estateID := h.createEstate(t, creator)
	path := "/api/v1/estates/" + estateID.String() + "/join-requests"

	resp, raw := h.do(t, call{method: http.MethodPost, path: path, as: &requester, key: "join-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	resp, raw = h.do(t, call{method: http.MethodPost, path: path, as: &requester, key: "join-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, decode[transitionResponse](t, raw).Replayed)

	// Without the key the retry is a genuine conflict.
	resp, raw = h.do(t, call{method: http.MethodPost, path: path, as: &requester})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "join request already pending", decode[errorResponse](t, raw).Error)

	resp, raw = h.do(t, call{method: http.MethodGet, path: "/api/v1/notifications", as: &creator})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]notificationResponse](t, raw), 1, "the admin is alerted once")
}

func TestAPI_AuthAndInputErrors(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)
	u := h.newUser(t)
	bogus := user{id: uuid.New(), token: "not-a-jwt"}

	cases := []struct {
		name   string
		call   call
		status int
		code   string
	}{
		{"anonymous", call{method: http.MethodGet, path: "/api/v1/estates"}, http.StatusUnauthorized, ""},
		{"bad token", call{method: http.MethodGet, path: "/api/v1/estates", as: &bogus}, http.StatusUnauthorized, ""},
		{"malformed id", call{method: http.MethodGet, path: "/api/v1/estates/not-a-uuid", as: &u}, http.StatusBadRequest, "validation"},
		{"unknown estate", call{method: http.MethodGet, path: "/api/v1/estates/" + uuid.NewString(), as: &u}, http.StatusNotFound, "not_found"},
		{"unknown charge", call{method: http.MethodGet, path: "/api/v1/charges/" + uuid.NewString(), as: &u}, http.StatusNotFound, "not_found"},
		{"bad json", call{method: http.MethodPost, path: "/api/v1/estates", as: &u, rawBody: strings.NewReader("{"), contentType: "application/json"}, http.StatusBadRequest, "validation"},
		{"unknown field", call{method: http.MethodPost, path: "/api/v1/estates", as: &u, body: map[string]string{"name": "x", "owner": "me"}}, http.StatusBadRequest, "validation"},
		{"empty name", call{method: http.MethodPost, path: "/api/v1/estates", as: &u, body: map[string]string{"name": " "}}, http.StatusBadRequest, "validation"},
		{"bad limit", call{method: http.MethodGet, path: "/api/v1/notifications?limit=abc", as: &u}, http.StatusBadRequest, "validation"},
		{"unknown route", call{method: http.MethodGet, path: "/api/v1/nope", as: &u}, http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			resp, raw := h.do(t, tc.call)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			if tc.code != "" {
				assert.Equal(t, tc.code, decode[errorResponse](t, raw).Code)
			}
			assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
		})
	}
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		resp, raw := h.do(t, call{method: http.MethodGet, path: path})
		assert.Equal(t, http.StatusOK, resp.StatusCode, "%s: %s", path, raw)
	}

	u := h.newUser(t)
	h.createEstate(t, u)

	resp, raw := h.do(t, call{method: http.MethodGet, path: "/metrics"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "btorestate_membership_transitions_total")
	assert.Contains(t, string(raw), `route="/api/v1/estates"`)
}
