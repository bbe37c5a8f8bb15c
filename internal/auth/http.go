package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"ipmanager/internal/logs"

	"github.com/gorilla/mux"
)

type HTTP struct{ svc *Service }

func NewHTTP(s *Service) *HTTP { return &HTTP{svc: s} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	// POST /api/login  { username, password } -> { token, isAdmin }
	api.HandleFunc("/login", h.login).Methods(http.MethodPost)
}

func (h *HTTP) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Username == "" || in.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password required"})
		return
	}

	sess, err := h.svc.Authenticate(r.Context(), in.Username, in.Password)
	switch {
	case err == nil:
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidCredentials):
		logs.Logger.WithField("username", in.Username).Info("login rejected")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
		return
	default:
		logs.Logger.WithError(err).Error("login failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": sess.Token, "isAdmin": sess.IsAdmin})
}

// Middleware кладёт auth.Context в запрос. Запросы не отклоняет.
func Middleware(s *Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := s.Authorize(r.Header.Get("Authorization"))
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), c)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
