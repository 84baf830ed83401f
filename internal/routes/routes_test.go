package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parlourbd/parlour-server/internal/config"
	dbpkg "github.com/parlourbd/parlour-server/internal/db"
	"github.com/parlourbd/parlour-server/internal/models"
	"github.com/parlourbd/parlour-server/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeGateway records what the bridge forwards to the processor.
type fakeGateway struct {
	lastAmount int64
	calls      int
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amount int64) (string, error) {
	f.lastAmount = amount
	f.calls++
	return "cs_test_secret", nil
}

type testServer struct {
	r      *gin.Engine
	db     *gorm.DB
	tokens *token.Service
	fake   *fakeGateway
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret", ServerPort: "0"}
	fake := &fakeGateway{}

	r := gin.New()
	RegisterRoutes(r, db, cfg, zerolog.Nop(), fake)

	return &testServer{
		r:      r,
		db:     db,
		tokens: token.NewService(cfg.JWTSecret),
		fake:   fake,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func (s *testServer) tokenFor(t *testing.T, email string) string {
	t.Helper()
	tok, err := s.tokens.Issue(map[string]any{"email": email})
	require.NoError(t, err)
	return tok
}

func (s *testServer) makeAdmin(t *testing.T, name, email string) string {
	t.Helper()
	require.NoError(t, s.db.Create(&models.User{Name: name, Email: email, Role: models.RoleAdmin}).Error)
	return s.tokenFor(t, email)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ------------------------------
// health + token
// ------------------------------

func TestHealth(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestIssueToken(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/jwt", gin.H{"email": "a@x.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	tok, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, tok)

	claims, err := s.tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/jwt", gin.H{"name": "no email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ------------------------------
// services
// ------------------------------

func TestServicesRoundTrip(t *testing.T) {
	s := setupServer(t)
	admin := s.makeAdmin(t, "Root", "root@x.com")

	// empty to start
	w := s.do(t, http.MethodGet, "/services", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = s.do(t, http.MethodPost, "/services", gin.H{"name": "Haircut", "price": 20, "description": "classic"}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	insertedID, _ := decode(t, w)["insertedId"].(string)
	require.NotEmpty(t, insertedID)

	w = s.do(t, http.MethodGet, "/services", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var services []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
	require.Len(t, services, 1)
	assert.Equal(t, "Haircut", services[0].Name)

	w = s.do(t, http.MethodDelete, "/services/"+insertedID, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["deletedCount"])

	w = s.do(t, http.MethodGet, "/services", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestServicesAdminGate(t *testing.T) {
	s := setupServer(t)

	// no header at all
	w := s.do(t, http.MethodPost, "/services", gin.H{"name": "X", "price": 1}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// authenticated but not an admin
	require.NoError(t, s.db.Create(&models.User{Name: "Plain", Email: "plain@x.com"}).Error)
	plain := s.tokenFor(t, "plain@x.com")
	w = s.do(t, http.MethodPost, "/services", gin.H{"name": "X", "price": 1}, plain)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// garbage token
	w = s.do(t, http.MethodPost, "/services", gin.H{"name": "X", "price": 1}, "garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ------------------------------
// bookings
// ------------------------------

func TestBookingEndToEnd(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/jwt", gin.H{"email": "a@x.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	tok, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, tok)

	body := gin.H{"email": "a@x.com", "serviceName": "Haircut", "bookedDate": "2024-01-01", "price": 20}

	w = s.do(t, http.MethodPost, "/bookings", body, tok)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID, _ := decode(t, w)["insertedId"].(string)
	require.NotEmpty(t, bookingID)

	// identical slot again
	w = s.do(t, http.MethodPost, "/bookings", body, tok)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "This service is already booked on this date", decode(t, w)["message"])

	var count int64
	require.NoError(t, s.db.Model(&models.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// owner's list
	w = s.do(t, http.MethodGet, "/bookings?email=a@x.com", nil, tok)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "Haircut", mine[0].ServiceName)

	// fetch by id
	w = s.do(t, http.MethodGet, "/bookings/"+bookingID+"?email=a@x.com", nil, tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), bookingID)

	// unknown id is null, not an error status
	w = s.do(t, http.MethodGet, "/bookings/nope?email=a@x.com", nil, tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	// delete own booking
	w = s.do(t, http.MethodDelete, "/bookings/"+bookingID+"?email=a@x.com", nil, tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["deletedCount"])
}

func TestBookingOwnershipGates(t *testing.T) {
	s := setupServer(t)
	tok := s.tokenFor(t, "a@x.com")

	// booking for someone else's email
	w := s.do(t, http.MethodPost, "/bookings",
		gin.H{"email": "b@x.com", "serviceName": "Haircut", "bookedDate": "2024-01-01"}, tok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// listing someone else's bookings
	w = s.do(t, http.MethodGet, "/bookings?email=b@x.com", nil, tok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// no token at all
	w = s.do(t, http.MethodGet, "/bookings?email=a@x.com", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingsForAdmin(t *testing.T) {
	s := setupServer(t)
	admin := s.makeAdmin(t, "Root", "root@x.com")

	aTok := s.tokenFor(t, "a@x.com")
	bTok := s.tokenFor(t, "b@x.com")
	w := s.do(t, http.MethodPost, "/bookings", gin.H{"email": "a@x.com", "serviceName": "Haircut", "bookedDate": "2024-01-01"}, aTok)
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, http.MethodPost, "/bookings", gin.H{"email": "b@x.com", "serviceName": "Facial", "bookedDate": "2024-01-02"}, bTok)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/bookingsForAdmin", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	// not for regular users
	w = s.do(t, http.MethodGet, "/bookingsForAdmin", nil, aTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ------------------------------
// users
// ------------------------------

func TestRegisterIdempotent(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/users", gin.H{"name": "Alice", "email": "a@x.com"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, decode(t, w)["insertedId"])

	w = s.do(t, http.MethodPost, "/users", gin.H{"name": "Alice", "email": "a@x.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user already logged in", decode(t, w)["message"])

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/users", gin.H{"name": "Bob", "email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMakeAdminPromotion(t *testing.T) {
	s := setupServer(t)
	admin := s.makeAdmin(t, "Root", "root@x.com")

	w := s.do(t, http.MethodPost, "/users", gin.H{"name": "Target", "email": "target@x.com"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/users/admin?email=target@x.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["isAdmin"])

	w = s.do(t, http.MethodPatch, "/makeAdmin", gin.H{"email": "target@x.com"}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["modifiedCount"])

	w = s.do(t, http.MethodGet, "/users/admin?email=target@x.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["isAdmin"])
}

func TestListUsersRequiresAdmin(t *testing.T) {
	s := setupServer(t)
	admin := s.makeAdmin(t, "Root", "root@x.com")

	w := s.do(t, http.MethodGet, "/users", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)

	tok := s.tokenFor(t, "nobody@x.com")
	w = s.do(t, http.MethodGet, "/users", nil, tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ------------------------------
// payments
// ------------------------------

func TestCreatePaymentIntentForwardsMinorUnits(t *testing.T) {
	s := setupServer(t)
	tok := s.tokenFor(t, "a@x.com")

	w := s.do(t, http.MethodPost, "/create-payment-intent?email=a@x.com", gin.H{"price": 20}, tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cs_test_secret", decode(t, w)["clientSecret"])
	assert.Equal(t, int64(2000), s.fake.lastAmount)
	assert.Equal(t, 1, s.fake.calls)
}

func TestCreatePaymentIntentSelfGate(t *testing.T) {
	s := setupServer(t)
	tok := s.tokenFor(t, "a@x.com")

	w := s.do(t, http.MethodPost, "/create-payment-intent?email=b@x.com", gin.H{"price": 20}, tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, s.fake.calls)
}

func TestRecordPaymentMarksBookingPaid(t *testing.T) {
	s := setupServer(t)
	tok := s.tokenFor(t, "a@x.com")

	w := s.do(t, http.MethodPost, "/bookings",
		gin.H{"email": "a@x.com", "serviceName": "Haircut", "bookedDate": "2024-01-01", "price": 20}, tok)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID, _ := decode(t, w)["insertedId"].(string)

	w = s.do(t, http.MethodPost, "/payments?email=a@x.com",
		gin.H{"bookId": bookingID, "transactionId": "txn_1", "amount": 20, "email": "a@x.com"}, tok)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, decode(t, w)["insertedId"])

	var booking models.Booking
	require.NoError(t, s.db.Where("id = ?", bookingID).First(&booking).Error)
	assert.True(t, booking.Paid)
	assert.Equal(t, "txn_1", booking.TransactionID)
}

// ------------------------------
// audit trail
// ------------------------------

func TestAuditTrail(t *testing.T) {
	s := setupServer(t)
	admin := s.makeAdmin(t, "Root", "root@x.com")

	w := s.do(t, http.MethodPost, "/services", gin.H{"name": "Haircut", "price": 20}, admin)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Eventually(t, func() bool {
		var n int64
		s.db.Model(&models.AuditLog{}).Where("action = ?", "service.create").Count(&n)
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)

	w = s.do(t, http.MethodGet, "/auditLogs?action=service.create", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])
}
