package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"needsleads/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type NeedReader interface {
	Needs(ctx context.Context, filters types.NeedFilters) ([]*types.NeedSummary, error)
	NeedSummary(ctx context.Context, needID int64) (*types.NeedSummary, error)
}

type LeadReader interface {
	LeadsByNeed(ctx context.Context, needID int64) ([]*types.LeadWithProvider, error)
}

type CategoryReader interface {
	AllCategories(ctx context.Context) ([]*types.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*types.Category, error)
}

type MemberReader interface {
	Leaderboard(ctx context.Context, limit uint64) ([]*types.Member, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	needsRepo    NeedReader
	leadsRepo    LeadReader
	categoryRepo CategoryReader
	memberRepo   MemberReader

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	needsRepo NeedReader,
	leadsRepo LeadReader,
	categoryRepo CategoryReader,
	memberRepo MemberReader,
) (*Service, error) {
	mux := flow.New()

	cookie, err := newSecureCookie(config, logger)
	if err != nil {
		return nil, err
	}

	s := &Service{
		logger: logger,
		config: config,
		cookie: cookie,

		needsRepo:    needsRepo,
		leadsRepo:    leadsRepo,
		categoryRepo: categoryRepo,
		memberRepo:   memberRepo,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           StripTrailingSlash(mux),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

// newSecureCookie decodes the configured keys. Without a hash key a random one
// is generated, which invalidates every access cookie on restart. Without a
// block key cookies are signed but not encrypted.
func newSecureCookie(config *types.Config, logger *logrus.Logger) (*securecookie.SecureCookie, error) {
	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode COOKIE_HASH_KEY: %w", err)
	}

	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode COOKIE_BLOCK_KEY: %w", err)
	}

	if len(hashKey) == 0 {
		logger.Warn("COOKIE_HASH_KEY is not set, access cookies will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	if len(blockKey) == 0 {
		blockKey = nil
	}

	cookie := securecookie.New(hashKey, blockKey)
	cookie.MaxAge(config.CookieMaxAgeSec)

	return cookie, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAccess)

		r.HandleFunc("/api/needs", s.handleListNeeds, http.MethodGet)
		r.HandleFunc("/api/needs/:id", s.handleGetNeed, http.MethodGet)
		r.HandleFunc("/api/categories", s.handleListCategories, http.MethodGet)
		r.HandleFunc("/api/leaderboard", s.handleLeaderboard, http.MethodGet)
	})
}
