package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/service"
)

type ArticleService interface {
	crudService[service.ArticleInput, *model.ArticleDetail]
	List(ctx context.Context) ([]model.ArticleDetail, error)
}

// ArticleHandler serves the /articles resource. Every article it returns
// carries its author.
type ArticleHandler struct {
	resource[service.ArticleInput, *model.ArticleDetail, *ArticleRequest]
	articles ArticleService
}

func NewArticleHandler(articles ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		resource: resource[service.ArticleInput, *model.ArticleDetail, *ArticleRequest]{
			name:       "Article",
			svc:        articles,
			newPayload: func() *ArticleRequest { return &ArticleRequest{} },
			logger:     logger,
		},
		articles: articles,
	}
}

// HandleList returns every article as a JSON array.
//
// HTTP: GET /articles
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, articles)
}
