package httpapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpapi "github.com/pantrybook/pantry/internal/http"
	"github.com/pantrybook/pantry/internal/service"
	"github.com/pantrybook/pantry/internal/store/drivers/sqlite"
	"github.com/pantrybook/pantry/pkg/api"
	"github.com/pantrybook/pantry/pkg/cryptox"
	"github.com/pantrybook/pantry/pkg/slogx"
	"github.com/pantrybook/pantry/pkg/tokenx"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "pantry-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testServer struct {
	handler http.Handler
	store   *sqlite.Store
	codec   *tokenx.Codec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := tokenx.NewCodec([]byte(testSecret), "pantryd-test")
	require.NoError(t, err)

	sessions := &service.SessionService{
		Store:       st,
		Codec:       codec,
		Credentials: &service.CredentialVerifier{Store: st},
		Issuer:      "pantryd-test",
		TokenTTL:    time.Hour,
	}

	handler := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:    slogx.New(slogx.Config{Level: "error", Format: "text"}),
		Verifier:  codec,
		Sessions:  &httpapi.SessionHandler{Sessions: sessions},
		Meals:     &httpapi.MealsHandler{Meals: &service.MealService{Store: st}},
		Groceries: &httpapi.GroceriesHandler{Groceries: &service.GroceryService{Store: st}},
		Health: &httpapi.HealthHandler{
			Store:   st,
			Codec:   codec,
			Version: "test",
			Started: time.Now(),
		},
	})

	return &testServer{handler: handler, store: st, codec: codec}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) signup(t *testing.T, email string) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/v1/session/signup", "", api.SignUpRequest{
		Email: email, Password: "secret-password", FirstName: "Pat", LastName: "Doe",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func (ts *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/v1/session/login", "", api.LoginRequest{
		Email: email, Password: "secret-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AuthToken)
	return resp.AuthToken
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestSignUp(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/v1/session/signup", "", api.SignUpRequest{
		Email: "new@example.com", Password: "secret-password",
		FirstName: "New", LastName: "User",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var profile api.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, "new@example.com", profile.Email)
	require.NotContains(t, rec.Body.String(), "password")

	// Same email again conflicts.
	rec = ts.do(t, http.MethodPost, "/v1/session/signup", "", api.SignUpRequest{
		Email: "new@example.com", Password: "other-password",
		FirstName: "Other", LastName: "User",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, api.ErrorCodeEmailTaken, errorCode(t, rec))
}

func TestSignUp_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/v1/session/signup", "", api.SignUpRequest{
		Email: "incomplete@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.ErrorCodeInvalidInput, errorCode(t, rec))
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "login@example.com")

	token := ts.login(t, "login@example.com")

	claims, err := ts.codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "login@example.com", claims.Email)
}

func TestLogin_Failures(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "victim@example.com")

	// Malformed body.
	rec := ts.do(t, http.MethodPost, "/v1/session/login", "", api.LoginRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong password and unknown email produce identical responses.
	wrongPw := ts.do(t, http.MethodPost, "/v1/session/login", "", api.LoginRequest{
		Email: "victim@example.com", Password: "not-it",
	})
	noUser := ts.do(t, http.MethodPost, "/v1/session/login", "", api.LoginRequest{
		Email: "nobody@example.com", Password: "not-it",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	require.Equal(t, http.StatusUnauthorized, noUser.Code)
	require.Equal(t, wrongPw.Body.String(), noUser.Body.String())
}

func TestRefresh(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "fresh@example.com")
	token := ts.login(t, "fresh@example.com")

	orig, err := ts.codec.Verify(token)
	require.NoError(t, err)

	rec := ts.do(t, http.MethodPost, "/v1/session/refresh", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	next, err := ts.codec.Verify(resp.AuthToken)
	require.NoError(t, err)
	require.Equal(t, orig.UserID, next.UserID)
	require.Equal(t, orig.Email, next.Email)
	require.False(t, next.ExpiresAt.Time.Before(orig.ExpiresAt.Time))
}

func TestRefresh_BadTokens(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "tokens@example.com")

	otherCodec, err := tokenx.NewCodec([]byte("ffffffffffffffffffffffffffffffff"), "pantryd-test")
	require.NoError(t, err)
	forged, err := otherCodec.Encode(tokenx.NewSessionClaims(
		"someone", "tokens@example.com", "T", "K",
		time.Hour, "pantryd-test", time.Now().UTC(),
	))
	require.NoError(t, err)

	expired, err := ts.codec.Encode(tokenx.NewSessionClaims(
		"someone", "tokens@example.com", "T", "K",
		-time.Minute, "pantryd-test", time.Now().UTC(),
	))
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", forged},
		{"expired", expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/v1/session/refresh", tc.token, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, "unauthenticated", errorCode(t, rec))
		})
	}
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "leaver@example.com")
	token := ts.login(t, "leaver@example.com")

	rec := ts.do(t, http.MethodPost, "/v1/session/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Stateless tokens: the old token still verifies until it expires.
	rec = ts.do(t, http.MethodGet, "/v1/meals", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMealsFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "cook@example.com")
	token := ts.login(t, "cook@example.com")

	rec := ts.do(t, http.MethodGet, "/v1/meals", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []api.MealItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 7)
	require.Equal(t, "monday", items[0].Day)

	rec = ts.do(t, http.MethodPut, "/v1/meals/"+items[0].ID, token, api.UpdateMealRequest{
		Name: "pasta", Notes: "from the freezer",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated api.MealItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "pasta", updated.Name)
	require.Equal(t, "monday", updated.Day)

	// Unknown slot.
	rec = ts.do(t, http.MethodPut, "/v1/meals/does-not-exist", token, api.UpdateMealRequest{Name: "x"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeals_ForeignSlotHidden(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "owner@example.com")
	ts.signup(t, "intruder@example.com")

	ownerToken := ts.login(t, "owner@example.com")
	intruderToken := ts.login(t, "intruder@example.com")

	rec := ts.do(t, http.MethodGet, "/v1/meals", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []api.MealItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))

	rec = ts.do(t, http.MethodPut, "/v1/meals/"+items[0].ID, intruderToken, api.UpdateMealRequest{Name: "mine now"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGroceriesFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "buyer@example.com")
	token := ts.login(t, "buyer@example.com")

	rec := ts.do(t, http.MethodPost, "/v1/groceries", token, api.AddGroceryRequest{Name: "milk"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var milk api.GroceryItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &milk))
	require.Equal(t, 1, milk.Quantity)

	rec = ts.do(t, http.MethodPost, "/v1/groceries", token, api.AddGroceryRequest{Name: "eggs", Quantity: 12})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/groceries", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []api.GroceryItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)

	rec = ts.do(t, http.MethodDelete, "/v1/groceries/"+milk.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/v1/groceries/"+milk.ID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGroceries_RequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/v1/groceries", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	ts := newTestServer(t)

	// Exhaust the strict per-IP budget with failing logins, then expect 429.
	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = ts.do(t, http.MethodPost, "/v1/session/login", "", api.LoginRequest{
			Email: "brute@example.com", Password: "guess",
		})
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestHealthProbes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Database)

	// Readiness degrades when the database goes away.
	require.NoError(t, ts.store.Close())
	rec = ts.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
