package server

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"ipmanager/internal/logs"
)

// RegisterWebUI отдаёт собранный клиент из каталога dir.
// При пустом dir клиент не раздаётся, остаётся только API.
func (a *App) RegisterWebUI(dir string) {
	if dir == "" {
		return
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		logs.Logger.Warnf("ui: static dir %q not available, client disabled", dir)
		return
	}
	root := os.DirFS(dir)
	files := http.FileServer(http.FS(root))

	index := func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile(root, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}

	a.Router.PathPrefix("/").Methods(http.MethodGet, http.MethodHead).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// неизвестный /api/* путь отдаём как 404, а не как index.html
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" || name == "index.html" {
			index(w, r)
			return
		}
		if st, err := fs.Stat(root, name); err == nil && !st.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		// клиентский роутинг: неизвестный путь -> index.html
		index(w, r)
	})
}
