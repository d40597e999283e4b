package server

import (
	"crypto/subtle"
	"net/http"
	"time"

	"needsleads/internal/utils"
)

type accessSession struct {
	ID       string
	IssuedAt int64
}

type loginForm struct {
	Password string `form:"password"`
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	var login = new(loginForm)
	err = decoder.Decode(login, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode login form")
		s.writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if !s.passwordMatches(login.Password) {
		s.writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	session := accessSession{ID: utils.NanoID(), IssuedAt: time.Now().Unix()}
	encoded, err := s.cookie.Encode(s.config.CookieName, session)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode access cookie")
		s.internalServerError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   s.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.CookieMaxAgeSec,
		Path:     "/",
	})

	s.logger.WithField("session_id", session.ID).Info("access granted")

	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   s.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})

	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Service) passwordMatches(password string) bool {
	if s.config.SitePassword == "" || password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.config.SitePassword)) == 1
}
