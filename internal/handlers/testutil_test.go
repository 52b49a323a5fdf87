package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hospital-app-server/internal/config"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/routes"
	"hospital-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fixedClock pins "now" so future-time validation is deterministic.
type fixedClock struct {
	now time.Time
}

func (f *fixedClock) Now() time.Time {
	return f.now
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	clock  *fixedClock
}

// newTestEnv builds a router backed by an isolated in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))

	cfg := &config.Config{
		Port:                      "0",
		Environment:               "development",
		JWTSecret:                 "test_jwt_secret",
		JWTRefreshSecret:          "test_refresh_secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}

	clock := &fixedClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}

	router := gin.New()
	routes.SetupRoutesWithClock(router, db, cfg, clock)

	return &testEnv{router: router, db: db, cfg: cfg, clock: clock}
}

// createUser persists a user with the given role. PATIENT users get their
// profile auto-created by the model hook.
func (e *testEnv) createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user := models.User{Email: email, FullName: "Test " + string(role), Role: role}
	require.NoError(t, user.SetPassword("testpass123"))
	require.NoError(t, e.db.Create(&user).Error)
	return &user
}

// tokenFor issues a valid access token for a user.
func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(user, e.cfg)
	require.NoError(t, err)
	return token
}

// patientOf loads the auto-created patient profile for a user.
func (e *testEnv) patientOf(t *testing.T, user *models.User) *models.Patient {
	t.Helper()
	var patient models.Patient
	require.NoError(t, e.db.Where("user_id = ?", user.ID).First(&patient).Error)
	return &patient
}

// seedDoctor creates a hospital, branch and doctor record, optionally linked
// to a DOCTOR login.
func (e *testEnv) seedDoctor(t *testing.T, userID *string) *models.Doctor {
	t.Helper()
	hospital := models.Hospital{Name: "Test Hospital", Email: fmt.Sprintf("h-%s@example.com", strings.ToLower(t.Name())), Address: "123 St", Phone: "1234567890"}
	require.NoError(t, e.db.Create(&hospital).Error)
	branch := models.HospitalBranch{HospitalID: hospital.ID, Name: "Main Branch", Address: "123 St", Phone: "1234567890", City: "City", State: "State"}
	require.NoError(t, e.db.Create(&branch).Error)
	doctor := models.Doctor{BranchID: branch.ID, UserID: userID, Name: "Dr. Who", Specialization: "General", AvailableTimes: `["Mon 9-11am"]`}
	require.NoError(t, e.db.Create(&doctor).Error)
	return &doctor
}

// do performs a request against the test router.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// apiResponse mirrors the utils.ResponseData envelope.
type apiResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.NotEmpty(t, resp.Data, "expected data in response, got: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
