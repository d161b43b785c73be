package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/doylio/eros-server/internal/app"
	"github.com/doylio/eros-server/internal/auth"
	"github.com/doylio/eros-server/internal/items"
	"github.com/doylio/eros-server/internal/shared"
	"github.com/doylio/eros-server/internal/users"
	_ "github.com/doylio/eros-server/testing"
)

type memoryAccounts struct {
	accounts map[uuid.UUID]auth.Account
}

func (r *memoryAccounts) FindByUsername(_ context.Context, username string) (*auth.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			clone := account
			clone.Tokens = append([]auth.IssuedToken(nil), account.Tokens...)
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAccounts) FindByID(_ context.Context, id uuid.UUID) (*auth.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := account
	clone.Tokens = append([]auth.IssuedToken(nil), account.Tokens...)
	return &clone, nil
}

func (r *memoryAccounts) List(_ context.Context) ([]auth.Account, error) {
	result := make([]auth.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		result = append(result, account)
	}
	return result, nil
}

func (r *memoryAccounts) Insert(_ context.Context, account *auth.Account) error {
	for _, existing := range r.accounts {
		if existing.Username == account.Username {
			return shared.ErrDuplicate
		}
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *memoryAccounts) Update(_ context.Context, account *auth.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return shared.ErrNotFound
	}
	clone := *account
	clone.Tokens = append([]auth.IssuedToken(nil), account.Tokens...)
	r.accounts[account.ID] = clone
	return nil
}

func (r *memoryAccounts) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.accounts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

type memoryItems struct {
	items map[uuid.UUID]items.Item
}

func (r *memoryItems) FindByID(_ context.Context, id uuid.UUID) (*items.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := item
	return &clone, nil
}

func (r *memoryItems) List(_ context.Context) ([]items.Item, error) {
	result := make([]items.Item, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}
	return result, nil
}

func (r *memoryItems) Insert(_ context.Context, item *items.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memoryItems) Update(_ context.Context, item *items.Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return shared.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *memoryItems) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type testServer struct {
	router  http.Handler
	service *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &app.Config{AppEnv: "development", LogFormat: "pretty"}
	logger := app.NewLogger(cfg)

	accountRepo := &memoryAccounts{accounts: make(map[uuid.UUID]auth.Account)}
	hasher := auth.NewPasswordHasher(4)
	tokenService := auth.NewTokenService([]byte("router-test-secret"))
	authService := auth.NewService(accountRepo, hasher, tokenService)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.Middleware{Service: authService, Logger: logger}

	itemService := items.NewService(&memoryItems{items: make(map[uuid.UUID]items.Item)})
	itemHandler := items.NewHandler(logger, itemService)

	userService := users.NewService(authService, accountRepo, hasher)
	userHandler := users.NewHandler(logger, userService)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		ItemsHandler:   itemHandler,
		UsersHandler:   userHandler,
	})
	return &testServer{router: router, service: authService}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}
	res := httptest.NewRecorder()
	s.router.ServeHTTP(res, req)
	return res
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	res := s.do(http.MethodPost, "/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, res.Code)
	token := res.Header().Get(auth.TokenHeader)
	require.NotEmpty(t, token)
	return token
}

// The canonical lifecycle: a standard account logs in, is turned away from
// superuser territory, logs out, and its token dies with the session.
func TestStandardAccountLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.service.Register(ctx, "a", "pw1", auth.RoleStandard)
	require.NoError(t, err)

	token := srv.login(t, "a", "pw1")

	// Authenticated route works.
	res := srv.do(http.MethodGet, "/item", token, "")
	require.Equal(t, http.StatusOK, res.Code)

	// Superuser-only route rejects with 401, and no mutation happens.
	res = srv.do(http.MethodPost, "/user", token, `{"username":"evil","password":"pw","superuser":true}`)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	_, err = srv.service.Authenticate(ctx, "evil", "pw")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	// Logout succeeds, after which the token is unusable everywhere.
	res = srv.do(http.MethodDelete, "/logout", token, "")
	require.Equal(t, http.StatusOK, res.Code)

	res = srv.do(http.MethodGet, "/item", token, "")
	require.Equal(t, http.StatusUnauthorized, res.Code)
	res = srv.do(http.MethodDelete, "/logout", token, "")
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestConcurrentSessionsRevokeIndependently(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.service.Register(context.Background(), "a", "pw1", auth.RoleStandard)
	require.NoError(t, err)

	first := srv.login(t, "a", "pw1")
	second := srv.login(t, "a", "pw1")
	require.NotEqual(t, first, second)

	// Both sessions are live.
	require.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/item", first, "").Code)
	require.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/item", second, "").Code)

	// Revoking the first leaves the second untouched.
	require.Equal(t, http.StatusOK, srv.do(http.MethodDelete, "/logout", first, "").Code)
	require.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/item", first, "").Code)
	require.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/item", second, "").Code)
}

func TestSuperuserManagesAccounts(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.service.Register(context.Background(), "root", "pw1", auth.RoleSuperuser)
	require.NoError(t, err)
	token := srv.login(t, "root", "pw1")

	res := srv.do(http.MethodPost, "/user", token, `{"username":"b","password":"pw2","superuser":false}`)
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), `"username":"b"`)
	require.NotContains(t, res.Body.String(), "pw2")
	require.NotContains(t, res.Body.String(), "password")
	require.NotContains(t, res.Body.String(), "tokens")

	// The new account can log in immediately.
	srv.login(t, "b", "pw2")
}

func TestUnauthenticatedRoutes(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/healthz", "", "").Code)
	require.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/", "", "").Code)
	require.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/item", "", "").Code)
	require.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/user", "", "").Code)
}

func TestItemCreationRecordsCreator(t *testing.T) {
	srv := newTestServer(t)

	account, err := srv.service.Register(context.Background(), "a", "pw1", auth.RoleStandard)
	require.NoError(t, err)
	token := srv.login(t, "a", "pw1")

	res := srv.do(http.MethodPost, "/item", token, `{"name":"web-01","stackType":"LAMP","notes":"first"}`)
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), `"name":"web-01"`)
	require.Contains(t, res.Body.String(), account.ID.String())

	res = srv.do(http.MethodPost, "/item", token, `{"name":"web-02","stackType":"WAMP"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)
}
