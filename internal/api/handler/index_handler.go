package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// IndexReader supplies the root HTML document. *site.Site satisfies it.
type IndexReader interface {
	ReadIndex() ([]byte, error)
}

// IndexHandler serves the game page at the root path.
type IndexHandler struct {
	site   IndexReader
	onRead func(error)
	logger *zap.Logger
}

// NewIndexHandler builds the root handler. onRead observes the outcome of
// every disk read and may be nil.
func NewIndexHandler(site IndexReader, onRead func(error), logger *zap.Logger) *IndexHandler {
	if onRead == nil {
		onRead = func(error) {}
	}
	return &IndexHandler{site: site, onRead: onRead, logger: logger}
}

// Index handles GET /
//
// The document is re-read on every request.
//
// @Summary  Game page
// @Tags     site
// @Produce  html
// @Success  200
// @Failure  500  {object}  map[string]string
// @Router   / [get]
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	body, err := h.site.ReadIndex()
	h.onRead(err)
	if err != nil {
		h.logger.Error("failed to read index document", zap.Error(err))
		mapError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
