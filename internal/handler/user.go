package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/service"
)

// UserService is what UserHandler needs from the service layer.
// *service.UserService satisfies it.
type UserService interface {
	crudService[service.UserInput, *model.User]
	List(ctx context.Context, p model.Pagination) ([]model.User, int, error)
	ListArticles(ctx context.Context, id int64, p model.Pagination) (*service.UserArticles, error)
}

// UserHandler serves the /users resource.
type UserHandler struct {
	resource[service.UserInput, *model.User, *UserRequest]
	users UserService
}

func NewUserHandler(users UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		resource: resource[service.UserInput, *model.User, *UserRequest]{
			name:       "User",
			svc:        users,
			newPayload: func() *UserRequest { return &UserRequest{} },
			logger:     logger,
		},
		users: users,
	}
}

// UserPage is the body of GET /users.
type UserPage struct {
	Users []model.User `json:"users"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// UserArticlesPage is the body of GET /users/{id}/articles.
type UserArticlesPage struct {
	User     *model.User     `json:"user"`
	Articles []model.Article `json:"articles"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

// HandleList returns one page of users.
//
// HTTP: GET /users?limit=10&page=1
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p := pagination(r, "page")

	users, total, err := h.users.List(r.Context(), p)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, r, http.StatusOK, UserPage{
		Users: users,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// HandleListArticles returns one page of a user's articles.
//
// HTTP: GET /users/{id}/articles?limit=10&page=1
//
// Older clients send the page number as ?offset=; it is honoured when
// ?page= is absent.
func (h *UserHandler) HandleListArticles(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, h.logger, apperror.NotFound("User"))
		return
	}
	p := pagination(r, "page", "offset")

	res, err := h.users.ListArticles(r.Context(), id, p)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, r, http.StatusOK, UserArticlesPage{
		User:     res.User,
		Articles: res.Articles,
		Total:    res.Total,
		Page:     p.Page,
		Limit:    p.Limit,
	})
}
