package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fineboard/internal/models"
	"fineboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken   string
	loginErr     error
	parseID      int
	parseErr     error
	user         *models.User
	userErr      error
	seedUsersN   int
	seedUsersErr error

	lastLoginUsername string
	lastLoginPassword string
	lastParseToken    string
	seedUsersCalls    int
}

func (m *mockAuth) Login(username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) UserByID(id int) (*models.User, error) {
	return m.user, m.userErr
}

func (m *mockAuth) SeedUsers() (int, error) {
	m.seedUsersCalls++
	return m.seedUsersN, m.seedUsersErr
}

type mockLedger struct {
	fines     []models.Fine
	listErr   error
	created   models.Fine
	createErr error
	deleteErr error
	totals    service.BoardTotals
	totalsErr error
	seedN     int
	seedErr   error

	listCalls    int
	createCalls  int
	deleteCalls  int
	seedCalls    int
	lastCreate   service.CreateFineInput
	lastDeleteID int
}

func (m *mockLedger) List(ctx context.Context) ([]models.Fine, error) {
	m.listCalls++
	return m.fines, m.listErr
}

func (m *mockLedger) Create(ctx context.Context, in service.CreateFineInput) (models.Fine, error) {
	m.createCalls++
	m.lastCreate = in
	return m.created, m.createErr
}

func (m *mockLedger) Delete(ctx context.Context, id int) error {
	m.deleteCalls++
	m.lastDeleteID = id
	return m.deleteErr
}

func (m *mockLedger) Totals(ctx context.Context) (service.BoardTotals, error) {
	return m.totals, m.totalsErr
}

func (m *mockLedger) SeedFines(ctx context.Context) (int, error) {
	m.seedCalls++
	return m.seedN, m.seedErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

// authedService returns a service whose session middleware resolves every
// request carrying a session cookie to the given user.
func authedService(user *models.User, ledger *mockLedger) *service.Service {
	return &service.Service{
		Authorization: &mockAuth{parseID: user.ID, user: user},
		Ledger:        ledger,
	}
}

func upperUser() *models.User {
	return &models.User{ID: 1, Username: "captain", Role: models.RoleUpper}
}

func viewerUser() *models.User {
	return &models.User{ID: 2, Username: "rookie", Role: models.RoleViewer}
}

func withSession(value string) *http.Cookie {
	return &http.Cookie{Name: sessionCookie, Value: value}
}

// doRequest performs a request against the router. A nil form means no body;
// otherwise the form is posted urlencoded.
func doRequest(t *testing.T, r *gin.Engine, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// responseCookie finds a cookie by name in the recorded response, or nil.
func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
