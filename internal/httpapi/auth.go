package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/users"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req users.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &common.ValidationFailure{Fields: []common.FieldError{
			{Field: "body", Message: "request body must be valid JSON"},
		}})
		return
	}
	session, err := s.users.Signup(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, session)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &common.ValidationFailure{Fields: []common.FieldError{
			{Field: "body", Message: "request body must be valid JSON"},
		}})
		return
	}
	session, err := s.users.Login(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, session)
}

// authenticate requires a valid bearer token and stashes the user id in
// the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, r, common.UnauthorizedError("Missing bearer token"))
			return
		}
		userID, err := s.auth.VerifyToken(token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(common.WithUserID(r.Context(), userID)))
	})
}
