package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/momentum/tetris-vault-toast/internal/domain"
)

// FileOpener resolves names inside the static directory. *site.Site
// satisfies it.
type FileOpener interface {
	Open(name string) (*os.File, fs.FileInfo, error)
}

// StaticHandler serves files from the static directory verbatim.
type StaticHandler struct {
	files  FileOpener
	logger *zap.Logger
}

func NewStaticHandler(files FileOpener, logger *zap.Logger) *StaticHandler {
	return &StaticHandler{files: files, logger: logger}
}

// Serve handles GET/HEAD /static/*
//
// Content type comes from the file extension. Conditional and range
// requests are handled by http.ServeContent.
//
// @Summary  Static asset
// @Tags     site
// @Success  200
// @Failure  404  {object}  map[string]string
// @Router   /static/{path} [get]
func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	f, info, err := h.files.Open(name)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.logger.Error("failed to open static file", zap.String("name", name), zap.Error(err))
		}
		mapError(w, err)
		return
	}
	defer f.Close()

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
