package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"playlift/internal/services"
)

// handleAuthRedirect starts the authorization-code flow by sending the user
// to the Google consent screen.
func (s *Server) handleAuthRedirect(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	http.Redirect(w, r, s.target.AuthURL(state), http.StatusFound)
}

// handleOAuthCallback exchanges the authorization code and hands the token
// pair back to the frontend via the success redirect. Tokens are never stored
// server-side; the frontend sends them with each migration request.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		writeError(w, http.StatusBadRequest, "authorization_failed", fmt.Sprintf("authorization failed: %s", errParam))
		return
	}

	tokens, err := s.target.Exchange(r.Context(), code)
	if err != nil {
		s.logger.Error("token exchange failed", "err", err)
		writeError(w, http.StatusBadGateway, "exchange_failed", "token exchange failed")
		return
	}

	q := url.Values{}
	q.Set("access_token", tokens.AccessToken)
	if tokens.RefreshToken != "" {
		q.Set("refresh_token", tokens.RefreshToken)
	}

	dest := fmt.Sprintf("%s/youtube-auth-success.html?%s", s.config.Server.FrontendURL, q.Encode())
	http.Redirect(w, r, dest, http.StatusFound)
}

// handleCheckAuth verifies the bearer token in the Authorization header by
// resolving the caller's identity against YouTube.
func (s *Server) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := s.target.Identity(r.Context(), services.TokenPair{AccessToken: token}); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
