package ipam

import (
	"encoding/json"
	"net/http"

	"ipmanager/internal/auth"

	"github.com/gorilla/mux"
)

type HTTP struct{ svc *Service }

func NewHTTP(s *Service) *HTTP { return &HTTP{svc: s} }

// RegisterRoutes ждёт, что auth.Middleware уже положил auth.Context в запрос.
func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	// GET /api/ips?device_name=... , публично
	api.HandleFunc("/ips", h.list).Methods(http.MethodGet)
	// POST /api/ips  { ip_address, device_name, mac_address, description, assigned_to }
	api.HandleFunc("/ips", h.create).Methods(http.MethodPost)
	api.HandleFunc("/ips/{id}", h.get).Methods(http.MethodGet)
	// PUT /api/ips/{id} , полная замена полей
	api.HandleFunc("/ips/{id}", h.update).Methods(http.MethodPut)
	api.HandleFunc("/ips/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context(), FilterFromQuery(r.URL.Query()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *HTTP) create(w http.ResponseWriter, r *http.Request) {
	who := auth.FromContext(r.Context())
	if !who.IsAdmin {
		writeServiceError(w, r, ErrForbidden)
		return
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	e, err := h.svc.Create(r.Context(), in, who)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "success", "data": e})
}

func (h *HTTP) update(w http.ResponseWriter, r *http.Request) {
	who := auth.FromContext(r.Context())
	if !who.IsAdmin {
		writeServiceError(w, r, ErrForbidden)
		return
	}
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	e, err := h.svc.Update(r.Context(), id, in, who)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "success", "data": e})
}

func (h *HTTP) delete(w http.ResponseWriter, r *http.Request) {
	who := auth.FromContext(r.Context())
	if !who.IsAdmin {
		writeServiceError(w, r, ErrForbidden)
		return
	}
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	n, err := h.svc.Delete(r.Context(), id, who)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "deleted", "changes": n})
}
