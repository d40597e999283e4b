package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"needsleads/pkg/types"

	"github.com/sirupsen/logrus"
)

func ptr[T any](v T) *T {
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type fakeDirectory struct {
	needs      []*types.NeedSummary
	leads      map[int64][]*types.LeadWithProvider
	categories []*types.Category
	members    []*types.Member

	lastFilters      types.NeedFilters
	lastCategorySlug string
	lastLimit        uint64
	failNeeds        bool
}

func (f *fakeDirectory) Needs(ctx context.Context, filters types.NeedFilters) ([]*types.NeedSummary, error) {
	f.lastFilters = filters
	if f.failNeeds {
		return nil, errors.New("connection reset")
	}

	out := make([]*types.NeedSummary, 0)
	for _, n := range f.needs {
		if filters.Category != "" && n.CategorySlug != filters.Category {
			continue
		}
		if filters.Status != "" && n.Status != filters.Status {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(n.Title), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeDirectory) NeedSummary(ctx context.Context, needID int64) (*types.NeedSummary, error) {
	for _, n := range f.needs {
		if n.ID == needID {
			return n, nil
		}
	}
	return nil, types.ErrNeedNotFound
}

func (f *fakeDirectory) LeadsByNeed(ctx context.Context, needID int64) ([]*types.LeadWithProvider, error) {
	if leads, ok := f.leads[needID]; ok {
		return leads, nil
	}
	return []*types.LeadWithProvider{}, nil
}

func (f *fakeDirectory) AllCategories(ctx context.Context) ([]*types.Category, error) {
	return f.categories, nil
}

func (f *fakeDirectory) CategoryBySlug(ctx context.Context, slug string) (*types.Category, error) {
	f.lastCategorySlug = slug
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, types.ErrCategoryNotFound
}

func (f *fakeDirectory) Leaderboard(ctx context.Context, limit uint64) ([]*types.Member, error) {
	f.lastLimit = limit
	return f.members, nil
}

func newTestDirectory() *fakeDirectory {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &fakeDirectory{
		needs: []*types.NeedSummary{
			{
				Need:         types.Need{ID: 1, Title: "A good maid agency", CategoryID: 28, DateOfNeed: date, Status: types.NeedStatusHasLeads},
				CategoryName: "Domestic Helpers",
				CategorySlug: "domestic-helpers",
				LeadsCount:   1,
			},
			{
				Need:         types.Need{ID: 2, Title: "Conveyancing lawyer", CategoryID: 1, DateOfNeed: date, Status: types.NeedStatusOpen},
				CategoryName: "Legal Services",
				CategorySlug: "legal-services",
			},
		},
		leads: map[int64][]*types.LeadWithProvider{
			1: {{
				Lead:           types.Lead{ID: 1, NeedID: 1, ContactName: ptr("Jane"), ContactInfo: ptr("012-3456789"), ProvidedByID: ptr(int64(1))},
				ProvidedByName: ptr("Tom"),
			}},
		},
		categories: []*types.Category{
			{ID: 6, Name: "Business Consulting", Slug: "business-consulting"},
			{ID: 1, Name: "Legal Services", Slug: "legal-services"},
		},
		members: []*types.Member{{ID: 1, Name: "Tom", LeadsCount: 1}},
	}
}

func newTestService(t *testing.T, dir *fakeDirectory) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	config := &types.Config{
		SitePassword:    "eomy-secret",
		CookieName:      "eomy_auth",
		CookieMaxAgeSec: 2592000,
	}

	s, err := New(config, logger, dir, dir, dir, dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func login(t *testing.T, s *Service, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func accessCookie(t *testing.T, s *Service) *http.Cookie {
	t.Helper()

	rec := login(t, s, "eomy-secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == "eomy_auth" {
			return c
		}
	}
	t.Fatal("login did not set the access cookie")
	return nil
}

func get(s *Service, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
}

func TestHealthIsOpen(t *testing.T) {
	s := newTestService(t, newTestDirectory())

	rec := get(s, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAPIRequiresAccessCookie(t *testing.T) {
	s := newTestService(t, newTestDirectory())

	for _, path := range []string{"/api/needs", "/api/needs/1", "/api/categories", "/api/leaderboard"} {
		rec := get(s, path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without cookie: status = %d, want 401", path, rec.Code)
		}
	}

	forged := &http.Cookie{Name: "eomy_auth", Value: "authenticated"}
	if rec := get(s, "/api/needs", forged); rec.Code != http.StatusUnauthorized {
		t.Errorf("forged cookie: status = %d, want 401", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	s := newTestService(t, newTestDirectory())

	if rec := login(t, s, "wrong"); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", rec.Code)
	}
	if rec := login(t, s, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("empty password: status = %d, want 401", rec.Code)
	}

	cookie := accessCookie(t, s)
	if !cookie.HttpOnly || cookie.MaxAge != 2592000 {
		t.Errorf("cookie = %+v, want HttpOnly with a 30 day max age", cookie)
	}

	if rec := get(s, "/api/categories", cookie); rec.Code != http.StatusOK {
		t.Errorf("with cookie: status = %d, want 200", rec.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newTestService(t, newTestDirectory())

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "eomy_auth" || cookies[0].MaxAge >= 0 {
		t.Errorf("logout cookies = %+v, want an expired eomy_auth", cookies)
	}
}

func TestListNeeds(t *testing.T) {
	dir := newTestDirectory()
	s := newTestService(t, dir)
	cookie := accessCookie(t, s)

	rec := get(s, "/api/needs?category=legal-services", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var needs []types.NeedSummary
	decodeBody(t, rec, &needs)
	if len(needs) != 1 || needs[0].Title != "Conveyancing lawyer" || needs[0].CategoryName != "Legal Services" {
		t.Errorf("needs = %+v", needs)
	}
	if dir.lastFilters.Limit != defaultNeedsLimit {
		t.Errorf("default limit = %d, want %d", dir.lastFilters.Limit, defaultNeedsLimit)
	}
}

func TestListNeedsQueryHandling(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  uint64
		wantOffset uint64
		wantSearch string
	}{
		{"clamps limit", "?limit=5000", http.StatusOK, maxLimit, 0, ""},
		{"keeps limit and offset", "?limit=10&offset=20", http.StatusOK, 10, 20, ""},
		{"trims search", "?search=%20maid%20", http.StatusOK, defaultNeedsLimit, 0, "maid"},
		{"status with space", "?status=Has+Leads", http.StatusOK, defaultNeedsLimit, 0, ""},
		{"unknown status", "?status=Closed", http.StatusBadRequest, 0, 0, ""},
		{"non numeric limit", "?limit=ten", http.StatusBadRequest, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newTestDirectory()
			s := newTestService(t, dir)

			rec := get(s, "/api/needs"+tt.query, accessCookie(t, s))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			if dir.lastFilters.Limit != tt.wantLimit || dir.lastFilters.Offset != tt.wantOffset || dir.lastFilters.Search != tt.wantSearch {
				t.Errorf("filters = %+v", dir.lastFilters)
			}
		})
	}
}

func TestListNeedsUnknownCategory(t *testing.T) {
	dir := newTestDirectory()
	s := newTestService(t, dir)
	cookie := accessCookie(t, s)

	rec := get(s, "/api/needs?category=gardening", cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if dir.lastCategorySlug != "gardening" {
		t.Errorf("looked up slug %q, want %q", dir.lastCategorySlug, "gardening")
	}
	if dir.lastFilters.Category != "" {
		t.Errorf("needs queried for an unknown category: %+v", dir.lastFilters)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "category not found" {
		t.Errorf("body = %v", body)
	}

	rec = get(s, "/api/needs?category=%20business-consulting%20", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("known category: status = %d, want 200", rec.Code)
	}
	if dir.lastCategorySlug != "business-consulting" {
		t.Errorf("category was not trimmed before lookup: %q", dir.lastCategorySlug)
	}

	var needs []types.NeedSummary
	decodeBody(t, rec, &needs)
	if len(needs) != 0 {
		t.Errorf("needs = %+v, want none", needs)
	}
}

func TestListNeedsStoreFailure(t *testing.T) {
	dir := newTestDirectory()
	dir.failNeeds = true
	s := newTestService(t, dir)

	rec := get(s, "/api/needs", accessCookie(t, s))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestGetNeed(t *testing.T) {
	s := newTestService(t, newTestDirectory())
	cookie := accessCookie(t, s)

	rec := get(s, "/api/needs/1", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		ID     int64  `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
		Leads  []struct {
			ContactName    *string `json:"contact_name"`
			ProvidedByName *string `json:"provided_by_name"`
		} `json:"leads"`
	}
	decodeBody(t, rec, &body)

	if body.ID != 1 || body.Title != "A good maid agency" || body.Status != "Has Leads" {
		t.Errorf("need = %+v", body)
	}
	if len(body.Leads) != 1 || deref(body.Leads[0].ContactName) != "Jane" || deref(body.Leads[0].ProvidedByName) != "Tom" {
		t.Errorf("leads = %+v", body.Leads)
	}

	if rec := get(s, "/api/needs/99", cookie); rec.Code != http.StatusNotFound {
		t.Errorf("missing need: status = %d, want 404", rec.Code)
	}
	if rec := get(s, "/api/needs/abc", cookie); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", rec.Code)
	}
}

func TestLeaderboard(t *testing.T) {
	dir := newTestDirectory()
	s := newTestService(t, dir)
	cookie := accessCookie(t, s)

	rec := get(s, "/api/leaderboard", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if dir.lastLimit != defaultLeaderboardLimit {
		t.Errorf("limit = %d, want %d", dir.lastLimit, defaultLeaderboardLimit)
	}

	var members []types.Member
	decodeBody(t, rec, &members)
	if len(members) != 1 || members[0].Name != "Tom" || members[0].LeadsCount != 1 {
		t.Errorf("members = %+v", members)
	}

	get(s, "/api/leaderboard?limit=5", cookie)
	if dir.lastLimit != 5 {
		t.Errorf("limit = %d, want 5", dir.lastLimit)
	}
}

func TestTrailingSlashRedirects(t *testing.T) {
	s := newTestService(t, newTestDirectory())

	rec := get(s, "/api/needs/?status=Open", nil)
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/needs?status=Open" {
		t.Errorf("location = %q", loc)
	}
}

func TestNewRejectsBadKeys(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dir := newTestDirectory()
	_, err := New(&types.Config{CookieHashKey: "not base64!"}, logger, dir, dir, dir, dir)
	if err == nil {
		t.Error("expected an error for an undecodable hash key")
	}
}
