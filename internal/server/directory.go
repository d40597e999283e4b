package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"needsleads/pkg/types"
)

const (
	defaultNeedsLimit       = 50
	defaultLeaderboardLimit = 20
	maxLimit                = 200
)

type needDetail struct {
	*types.NeedSummary
	Leads []*types.LeadWithProvider `json:"leads"`
}

type leaderboardQuery struct {
	Limit uint64 `form:"limit"`
}

func clampLimit(limit, fallback uint64) uint64 {
	if limit == 0 {
		return fallback
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleListNeeds(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	var filters types.NeedFilters
	err := decoder.Decode(&filters, r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	filters.Category = strings.TrimSpace(filters.Category)
	filters.Search = strings.TrimSpace(filters.Search)
	if filters.Status != "" && !filters.Status.Valid() {
		s.writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	filters.Limit = clampLimit(filters.Limit, defaultNeedsLimit)

	if filters.Category != "" {
		_, err = s.categoryRepo.CategoryBySlug(ctx, filters.Category)
		if err != nil {
			if errors.Is(err, types.ErrCategoryNotFound) {
				s.writeError(w, http.StatusNotFound, "category not found")
				return
			}
			s.logger.WithError(err).WithField("category", filters.Category).Error("failed to load category")
			s.internalServerError(w)
			return
		}
	}

	needs, err := s.needsRepo.Needs(ctx, filters)
	if err != nil {
		s.logger.WithError(err).Error("failed to list needs")
		s.internalServerError(w)
		return
	}

	s.writeJSON(w, http.StatusOK, needs)
}

func (s *Service) handleGetNeed(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	needID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid need id")
		return
	}

	need, err := s.needsRepo.NeedSummary(ctx, needID)
	if err != nil {
		if errors.Is(err, types.ErrNeedNotFound) {
			s.writeError(w, http.StatusNotFound, "need not found")
			return
		}
		s.logger.WithError(err).WithField("need_id", needID).Error("failed to load need")
		s.internalServerError(w)
		return
	}

	leads, err := s.leadsRepo.LeadsByNeed(ctx, needID)
	if err != nil {
		s.logger.WithError(err).WithField("need_id", needID).Error("failed to load leads")
		s.internalServerError(w)
		return
	}

	s.writeJSON(w, http.StatusOK, needDetail{NeedSummary: need, Leads: leads})
}

func (s *Service) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categoryRepo.AllCategories(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list categories")
		s.internalServerError(w)
		return
	}

	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Service) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	var query leaderboardQuery
	err := decoder.Decode(&query, r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	members, err := s.memberRepo.Leaderboard(r.Context(), clampLimit(query.Limit, defaultLeaderboardLimit))
	if err != nil {
		s.logger.WithError(err).Error("failed to load leaderboard")
		s.internalServerError(w)
		return
	}

	s.writeJSON(w, http.StatusOK, members)
}
