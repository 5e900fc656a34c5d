package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/streakmart/internal/adapter/catalog"
	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/leaderboard"
	pkgAuth "github.com/polkiloo/streakmart/internal/pkg/auth"
	"github.com/polkiloo/streakmart/internal/server/http/dto"
	"github.com/polkiloo/streakmart/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/streakmart/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	route := path
	if i := strings.Index(route, "?"); i >= 0 {
		route = route[:i]
	}
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asAuthenticated(userID, username string) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
		c.Set(middleware.UsernameContextKey, username)
	}
}

func TestCurrentUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != "" {
		t.Fatalf("expected empty id when not set, got %q", got)
	}
	if got := CurrentUsername(c); got != "" {
		t.Fatalf("expected empty username when not set, got %q", got)
	}

	c.Set(middleware.UserIDContextKey, "user-42")
	c.Set(middleware.UsernameContextKey, "zoe")
	if got := CurrentUserID(c); got != "user-42" {
		t.Fatalf("expected user-42, got %q", got)
	}
	if got := CurrentUsername(c); got != "zoe" {
		t.Fatalf("expected zoe, got %q", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Username: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var payload dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.User.Username != "alice" {
		t.Fatalf("unexpected user payload: %+v", payload)
	}
}

func TestAuthHandlerRegisterForwardsCredentials(t *testing.T) {
	username := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Username: username, Password: password})
	stub := testhelpers.AuthFacadeStub{
		RegisterFn: func(_ context.Context, gotUsername, gotPassword string) (*model.User, error) {
			if gotUsername != username || gotPassword != password {
				t.Fatalf("unexpected credentials passed to facade: %q %q", gotUsername, gotPassword)
			}
			return &model.User{ID: "user-1", Username: username, Streak: 1}, nil
		},
	}
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(stub).Register, nil, body, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var payload dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.User.Username != username {
		t.Fatalf("unexpected user payload: %+v", payload)
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domainErrors.ErrInvalidCredentials, http.StatusBadRequest},
		{"duplicate", domainErrors.ErrAlreadyExists, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		stub := testhelpers.AuthFacadeStub{
			RegisterFn: func(context.Context, string, string) (*model.User, error) {
				return nil, tc.err
			},
		}
		body, _ := json.Marshal(dto.AuthRequest{Username: "user", Password: "pass"})
		resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(stub).Register, nil, body, nil)
		if resp.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.code, resp.Code)
		}
	}

	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, []byte("not json"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginSetsCookies(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Username: "alice", Password: "pw"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	names := map[string]string{}
	for _, ck := range result.Cookies() {
		names[ck.Name] = ck.Value
	}
	if names[middleware.AccessCookieName] != "access-token" {
		t.Fatalf("access cookie not set: %+v", names)
	}
	if names[middleware.RefreshCookieName] != "refresh-token" {
		t.Fatalf("refresh cookie not set: %+v", names)
	}
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	stub := testhelpers.AuthFacadeStub{
		AuthenticateFn: func(context.Context, string, string) (*model.User, pkgAuth.TokenPair, error) {
			return nil, pkgAuth.TokenPair{}, domainErrors.ErrInvalidCredentials
		},
	}
	body, _ := json.Marshal(dto.AuthRequest{Username: "alice", Password: "bad"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(stub).Login, nil, body, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthHandlerRefresh(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})

	resp := performRequest(t, http.MethodPost, "/refresh", handler.Refresh, nil, nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/refresh", handler.Refresh, nil, nil, map[string]string{
		"Cookie": middleware.RefreshCookieName + "=refresh-token",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d", resp.Code)
	}

	rejecting := NewAuthHandler(testhelpers.AuthFacadeStub{
		RefreshFn: func(context.Context, string) (*model.User, pkgAuth.TokenPair, error) {
			return nil, pkgAuth.TokenPair{}, domainErrors.ErrInvalidRefresh
		},
	})
	resp = performRequest(t, http.MethodPost, "/refresh", rejecting.Refresh, nil, nil, map[string]string{
		"Cookie": middleware.RefreshCookieName + "=stale",
	})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for invalid refresh, got %d", resp.Code)
	}

	missing := NewAuthHandler(testhelpers.AuthFacadeStub{
		RefreshFn: func(context.Context, string) (*model.User, pkgAuth.TokenPair, error) {
			return nil, pkgAuth.TokenPair{}, domainErrors.ErrNotFound
		},
	})
	resp = performRequest(t, http.MethodPost, "/refresh", missing.Refresh, nil, nil, map[string]string{
		"Cookie": middleware.RefreshCookieName + "=orphan",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", resp.Code)
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/logout", NewAuthHandler(testhelpers.AuthFacadeStub{}).Logout, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("logout must succeed without session, got %d", resp.Code)
	}

	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	for _, ck := range result.Cookies() {
		if ck.MaxAge >= 0 {
			t.Fatalf("cookie %s not expired on logout", ck.Name)
		}
	}
}

func TestAuthHandlerCheck(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/check", handler.Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var anon dto.CheckAuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &anon); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if anon.IsAuthenticated || anon.User != nil {
		t.Fatalf("expected unauthenticated report, got %+v", anon)
	}

	resp = performRequest(t, http.MethodGet, "/check", handler.Check, nil, nil, map[string]string{
		"Cookie": middleware.AccessCookieName + "=access-token",
	})
	var authed dto.CheckAuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &authed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !authed.IsAuthenticated || authed.User == nil || authed.User.Username != "alice" {
		t.Fatalf("expected authenticated report, got %+v", authed)
	}

	expired := NewAuthHandler(testhelpers.AuthFacadeStub{
		CheckSessionFn: func(context.Context, string) (*model.User, error) {
			return nil, errors.New("expired")
		},
	})
	resp = performRequest(t, http.MethodGet, "/check", expired.Check, nil, nil, map[string]string{
		"Cookie": middleware.AccessCookieName + "=stale",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("check must answer 200 even for dead sessions, got %d", resp.Code)
	}
	var dead dto.CheckAuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &dead); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dead.IsAuthenticated {
		t.Fatalf("expected unauthenticated report for dead session")
	}
}

func TestDashboardHandler(t *testing.T) {
	var sawAll bool
	stub := testhelpers.DashboardFacadeStub{
		DashboardFn: func(ctx context.Context, showAll bool) ([]leaderboard.Entry, error) {
			sawAll = showAll
			return []leaderboard.Entry{{Username: "alice", Streak: 4}, {Username: "bob", Streak: 2}}, nil
		},
	}
	resp := performRequest(t, http.MethodGet, "/dashboard", NewDashboardHandler(stub).Dashboard, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if sawAll {
		t.Fatalf("default view must not request the full board")
	}
	var payload dto.DashboardResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Dashboard) != 2 || payload.Dashboard[0].Username != "alice" {
		t.Fatalf("unexpected dashboard payload: %+v", payload)
	}

	resp = performRequest(t, http.MethodGet, "/dashboard?all=true", NewDashboardHandler(stub).Dashboard, nil, nil, nil)
	if resp.Code != http.StatusOK || !sawAll {
		t.Fatalf("expected full board request, code=%d all=%v", resp.Code, sawAll)
	}
}

func TestMaintenanceHandlerSecret(t *testing.T) {
	facade := &testhelpers.MaintenanceFacadeStub{}
	handler := NewMaintenanceHandler(facade, "s3cret")

	resp := performRequest(t, http.MethodGet, "/sweep", handler.UpdateDashboardCache, nil, nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/sweep", handler.UpdateDashboardCache, nil, nil, map[string]string{CronAuthHeader: "wrong"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", resp.Code)
	}
	if facade.Calls != 0 {
		t.Fatalf("sweep must not run without authorization")
	}

	resp = performRequest(t, http.MethodGet, "/sweep", handler.UpdateDashboardCache, nil, nil, map[string]string{CronAuthHeader: "s3cret"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with secret, got %d", resp.Code)
	}
	if facade.Calls != 1 {
		t.Fatalf("expected one sweep, got %d", facade.Calls)
	}
}

func TestMaintenanceHandlerOpenWhenNoSecret(t *testing.T) {
	facade := &testhelpers.MaintenanceFacadeStub{}
	handler := NewMaintenanceHandler(facade, "")

	resp := performRequest(t, http.MethodGet, "/sweep", handler.UpdateDashboardCache, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for open endpoint, got %d", resp.Code)
	}
	if facade.Calls != 1 {
		t.Fatalf("expected one sweep, got %d", facade.Calls)
	}
}

func TestMaintenanceHandlerFailure(t *testing.T) {
	facade := &testhelpers.MaintenanceFacadeStub{
		ReconcileFn: func(context.Context, time.Time) error { return errors.New("sweep broke") },
	}
	handler := NewMaintenanceHandler(facade, "")

	resp := performRequest(t, http.MethodGet, "/sweep", handler.UpdateDashboardCache, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestPurchaseHandlerRecord(t *testing.T) {
	var gotUser string
	var gotItems []model.PurchaseItem
	stub := testhelpers.PurchaseFacadeStub{
		RecordFn: func(ctx context.Context, userID string, items []model.PurchaseItem) error {
			gotUser = userID
			gotItems = items
			return nil
		},
	}

	body, _ := json.Marshal([]dto.PurchaseItemRequest{{ID: 7, Title: "mug", Price: 9.5, Thumbnail: "mug.jpg"}})
	resp := performRequest(t, http.MethodPost, "/purchases", NewPurchaseHandler(stub).Record, asAuthenticated("user-1", "alice"), body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotUser != "user-1" {
		t.Fatalf("expected purchase for user-1, got %q", gotUser)
	}
	if len(gotItems) != 1 || gotItems[0].ProductID != 7 || gotItems[0].Title != "mug" {
		t.Fatalf("unexpected items: %+v", gotItems)
	}

	resp = performRequest(t, http.MethodPost, "/purchases", NewPurchaseHandler(stub).Record, asAuthenticated("user-1", "alice"), []byte("[]"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", resp.Code)
	}
}

func TestPurchaseHandlerHistory(t *testing.T) {
	var gotPage, gotLimit int
	stub := testhelpers.PurchaseFacadeStub{
		HistoryFn: func(ctx context.Context, userID string, page, limit int) ([]model.PurchaseItem, error) {
			gotPage, gotLimit = page, limit
			return []model.PurchaseItem{{ProductID: 3, Title: "pen", Timestamp: 1700000000000}}, nil
		},
	}

	resp := performRequest(t, http.MethodGet, "/purchases?_page=2&_limit=5", NewPurchaseHandler(stub).History, asAuthenticated("user-1", "alice"), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotPage != 2 || gotLimit != 5 {
		t.Fatalf("pagination not forwarded: page=%d limit=%d", gotPage, gotLimit)
	}

	var items []dto.PurchaseItemResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatalf("history must answer a bare array: %v", err)
	}
	if len(items) != 1 || items[0].ID != 3 || items[0].Timestamp != 1700000000000 {
		t.Fatalf("unexpected history payload: %+v", items)
	}

	missing := testhelpers.PurchaseFacadeStub{
		HistoryFn: func(context.Context, string, int, int) ([]model.PurchaseItem, error) {
			return nil, domainErrors.ErrNotFound
		},
	}
	resp = performRequest(t, http.MethodGet, "/purchases", NewPurchaseHandler(missing).History, asAuthenticated("user-ghost", "ghost"), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", resp.Code)
	}
}

func TestCommentHandlerPost(t *testing.T) {
	body, _ := json.Marshal(dto.CommentRequest{Text: "hello"})
	resp := performRequest(t, http.MethodPost, "/comments", NewCommentHandler(testhelpers.CommentFacadeStub{}).Post, asAuthenticated("user-1", "alice"), body, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var payload dto.PostCommentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Comment.Text != "hello" || payload.Comment.Username != "alice" {
		t.Fatalf("unexpected comment payload: %+v", payload)
	}

	empty := testhelpers.CommentFacadeStub{
		PostFn: func(context.Context, string, string) (*model.Comment, error) {
			return nil, domainErrors.ErrEmptyComment
		},
	}
	body, _ = json.Marshal(dto.CommentRequest{Text: "   "})
	resp = performRequest(t, http.MethodPost, "/comments", NewCommentHandler(empty).Post, asAuthenticated("user-1", "alice"), body, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty comment, got %d", resp.Code)
	}
}

func TestCommentHandlerList(t *testing.T) {
	stub := testhelpers.CommentFacadeStub{
		ListFn: func(context.Context) ([]model.Comment, error) {
			return []model.Comment{{ID: "comment-1", Username: "alice", Text: "newest"}}, nil
		},
	}
	resp := performRequest(t, http.MethodGet, "/comments", NewCommentHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload dto.CommentsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Comments) != 1 || payload.Comments[0].Text != "newest" {
		t.Fatalf("unexpected feed: %+v", payload)
	}
}

func TestCatalogHandlerList(t *testing.T) {
	var gotLimit, gotSkip int
	stub := testhelpers.CatalogFacadeStub{
		ProductsFn: func(ctx context.Context, limit, skip int) (*model.ProductPage, error) {
			gotLimit, gotSkip = limit, skip
			return &model.ProductPage{
				Products: []model.Product{{ID: 1, Title: "pen"}},
				Total:    1, Skip: skip, Limit: limit,
			}, nil
		},
	}

	resp := performRequest(t, http.MethodGet, "/products?limit=6&skip=12", NewCatalogHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotLimit != 6 || gotSkip != 12 {
		t.Fatalf("pagination not forwarded: limit=%d skip=%d", gotLimit, gotSkip)
	}

	resp = performRequest(t, http.MethodGet, "/products?limit=-3", NewCatalogHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusOK || gotLimit != defaultProductLimit {
		t.Fatalf("invalid limit must fall back to default, got %d", gotLimit)
	}
}

func TestCatalogHandlerGet(t *testing.T) {
	router := gin.New()
	router.GET("/products/:id", NewCatalogHandler(testhelpers.CatalogFacadeStub{}).Get)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products/42", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var product dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &product); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if product.ID != 42 {
		t.Fatalf("unexpected product: %+v", product)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products/abc", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.Code)
	}

	missing := gin.New()
	missing.GET("/products/:id", NewCatalogHandler(testhelpers.CatalogFacadeStub{
		ProductFn: func(context.Context, int64) (*model.Product, error) {
			return nil, catalog.ErrProductNotFound
		},
	}).Get)
	resp = httptest.NewRecorder()
	missing.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products/999", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCatalogHandlerSearch(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/search", handler.Search, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without query, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/search?q=phone", handler.Search, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestCatalogHandlerUpstreamDown(t *testing.T) {
	stub := testhelpers.CatalogFacadeStub{
		ProductsFn: func(context.Context, int, int) (*model.ProductPage, error) {
			return nil, catalog.ErrUpstream
		},
	}
	resp := performRequest(t, http.MethodGet, "/products", NewCatalogHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when upstream is down, got %d", resp.Code)
	}
}
