package health

import (
	"context"
	"net/http"
	"time"

	"ipmanager/internal/logs"

	"github.com/gorilla/mux"
)

// Pinger: то, что умеет проверить соединение с БД (*sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RegisterRoutes: только /healthz (процесс жив).
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
}

// RegisterRoutesWithDB: /healthz и /readyz (БД отвечает на ping).
func RegisterRoutesWithDB(r *mux.Router, db Pinger) {
	RegisterRoutes(r)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := db.PingContext(ctx); err != nil {
			logs.Logger.WithError(err).Warn("readiness: db ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db unavailable"))
			return
		}
		_, _ = w.Write([]byte("ready"))
	}).Methods(http.MethodGet)
}
