package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// ArticleInput is the client-supplied part of an article.
//
// UserID is kept as the raw text the client sent so that "missing" and
// "not an integer" can be reported separately.
type ArticleInput struct {
	Title   string
	Content string
	UserID  string
}

type ArticleService struct {
	articles repository.ArticleRepository
	logger   *slog.Logger
}

func NewArticleService(articles repository.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		articles: articles,
		logger:   logger,
	}
}

// List returns every article with its author. It is not paginated.
func (s *ArticleService) List(ctx context.Context) ([]model.ArticleDetail, error) {
	articles, err := s.articles.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*model.ArticleDetail, error) {
	return s.articles.GetArticleByID(ctx, id)
}

// Create validates and stores an article, then returns it with its author.
//
// VALIDATION ORDER (first failure wins):
//  1. title non-blank            → "Title cannot be empty"
//  2. content non-blank          → "Content cannot be empty"
//  3. structural rules           → field error list
//  4. user_id present            → "User ID is required"
//  5. user_id is an integer      → "User ID must be a valid integer"
//  6. owner exists (in the store) → 404 "User not found"
func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (*model.ArticleDetail, error) {
	article, err := validateArticle(in)
	if err != nil {
		return nil, err
	}

	if err := s.articles.CreateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("creating article: %w", err)
	}

	s.logger.Info("article created",
		slog.Int64("id", article.ID),
		slog.Int64("user_id", article.UserID),
	)

	return s.articles.GetArticleByID(ctx, article.ID)
}

// Update applies the same rules as Create and rewrites the article.
// A missing article wins over a missing owner when both are absent.
func (s *ArticleService) Update(ctx context.Context, id int64, in ArticleInput) (*model.ArticleDetail, error) {
	article, err := validateArticle(in)
	if err != nil {
		return nil, err
	}
	article.ID = id

	if err := s.articles.UpdateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("updating article %d: %w", id, err)
	}

	s.logger.Info("article updated", slog.Int64("id", id))

	return s.articles.GetArticleByID(ctx, id)
}

func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.articles.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
	}

	s.logger.Info("article deleted", slog.Int64("id", id))
	return nil
}

// validateArticle checks the input and returns the article to store. Title
// and content are stored as sent.
func validateArticle(in ArticleInput) (*model.Article, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.ValidationFailed("Title cannot be empty")
	}

	if strings.TrimSpace(in.Content) == "" {
		return nil, apperror.ValidationFailed("Content cannot be empty")
	}

	if err := checkArticle(in.Title, in.Content); err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(in.UserID)
	if raw == "" {
		return nil, apperror.ValidationFailed("User ID is required")
	}
	userID, ok := parseUserID(raw)
	if !ok {
		return nil, apperror.ValidationFailed("User ID must be a valid integer")
	}

	return &model.Article{Title: in.Title, Content: in.Content, UserID: userID}, nil
}

// parseUserID accepts any numeral with an integral value: "12", "12.0"
// and "1.2e1" all name user 12.
func parseUserID(raw string) (int64, bool) {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
