// Package repository declares the persistence gateway the services depend on.
//
// Services only see these interfaces. The SQL implementation lives in
// repository/sqlstore; service tests swap in in-memory fakes.
//
// Error contract for every implementation:
//   - missing rows          → apperror.NotFound
//   - duplicate user email  → apperror.Conflict
//   - anything else         → a wrapped driver error (becomes HTTP 500)
package repository

import (
	"context"

	"github.com/sakif/blog-api/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	// CreateUser inserts the user and sets u.ID. A taken email is a Conflict.
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context, opts ListOptions) ([]model.User, error)
	CountUsers(ctx context.Context) (int, error)
	// UpdateUser overwrites name and email in a single statement.
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ArticleRepository interface {
	// CreateArticle inserts the article only if a.UserID names an existing
	// user, and sets a.ID. A missing owner is NotFound("User").
	CreateArticle(ctx context.Context, a *model.Article) error
	GetArticleByID(ctx context.Context, id int64) (*model.ArticleDetail, error)
	ListArticles(ctx context.Context) ([]model.ArticleDetail, error)
	ListArticlesByUser(ctx context.Context, userID int64, opts ListOptions) ([]model.Article, error)
	CountArticlesByUser(ctx context.Context, userID int64) (int, error)
	// UpdateArticle rewrites the article only if its new owner exists.
	// A missing owner is NotFound("User"); a missing article is NotFound("Article").
	UpdateArticle(ctx context.Context, a *model.Article) error
	DeleteArticle(ctx context.Context, id int64) error
}
