package api

import (
	_ "embed"
	"net/http"

	"go.uber.org/zap"
)

//go:embed static/index.html
var indexHTML []byte

//go:embed static/docs.html
var docsHTML []byte

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	serveHTML(w, indexHTML)
}

func (s *Server) docs(w http.ResponseWriter, _ *http.Request) {
	serveHTML(w, docsHTML)
}

func serveHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		zap.L().Error("write page failed", zap.Error(err))
	}
}
