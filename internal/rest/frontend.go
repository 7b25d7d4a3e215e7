package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the static single-page frontend. Unknown paths fall
// back to the index file so client-side routing keeps working after a reload.
type FrontendHandler struct {
	staticPath string
	indexFile  string
}

func NewFrontendHandler(staticPath string, indexFile string) *FrontendHandler {
	return &FrontendHandler{staticPath: staticPath, indexFile: indexFile}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestPath := filepath.Join(h.staticPath, filepath.Clean("/"+strings.TrimPrefix(r.URL.Path, "/")))

	info, err := os.Stat(requestPath)
	if os.IsNotExist(err) || (err == nil && info.IsDir()) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexFile))
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
}
