package ipam

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ipmanager/internal/logs"

	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError переводит ошибки сервиса в HTTP-коды. Текст ошибок хранилища наружу не уходит.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "Admin access required")
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	default:
		logs.Logger.WithError(err).WithField("path", r.URL.Path).Error("ipam request failed")
		writeError(w, http.StatusInternalServerError, "operation failed; admin access may be required")
	}
}

func parseID(r *http.Request) (uint, bool) {
	idU, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || idU == 0 {
		return 0, false
	}
	return uint(idU), true
}
