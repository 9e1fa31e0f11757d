// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services accept plain Go values, never *http.Request, and return
// apperror kinds, never status codes. The handler translates between the two.
//
// DEPENDENCY INJECTION:
// UserService and ArticleService take repository interfaces, NOT *sqlstore.DB.
// main wires in the SQL store; tests wire in in-memory fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// UserInput is the client-supplied part of a user.
type UserInput struct {
	Name  string
	Email string
}

// UserArticles is one page of a user's articles together with the user.
type UserArticles struct {
	User     *model.User
	Articles []model.Article
	Total    int
}

type UserService struct {
	users    repository.UserRepository
	articles repository.ArticleRepository
	logger   *slog.Logger
}

func NewUserService(users repository.UserRepository, articles repository.ArticleRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		articles: articles,
		logger:   logger,
	}
}

// List returns one page of users and the total number of users.
func (s *UserService) List(ctx context.Context, p model.Pagination) ([]model.User, int, error) {
	users, err := s.users.ListUsers(ctx, repository.ListOptions{
		Limit:  p.Limit,
		Offset: p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}

	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	return users, total, nil
}

// Get returns the user or apperror.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// ListArticles returns one page of the user's articles.
// The user must exist; an unknown id is "User not found" even though an
// empty article page would be well-formed.
func (s *UserService) ListArticles(ctx context.Context, id int64, p model.Pagination) (*UserArticles, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	articles, err := s.articles.ListArticlesByUser(ctx, id, repository.ListOptions{
		Limit:  p.Limit,
		Offset: p.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing articles of user %d: %w", id, err)
	}

	total, err := s.articles.CountArticlesByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("counting articles of user %d: %w", id, err)
	}

	return &UserArticles{User: user, Articles: articles, Total: total}, nil
}

// Create validates and stores a new user, then returns the stored row.
//
// VALIDATION ORDER (first failure wins):
//  1. name present and non-blank  → "Name cannot be empty"
//  2. email present and non-blank → "Email cannot be empty"
//  3. email syntax                → "EMAIL not valid"
//
// Email uniqueness is not checked here. The store's UNIQUE index rejects the
// insert and the repository reports it as a Conflict.
func (s *UserService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	user, err := validateUser(in)
	if err != nil {
		return nil, err
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", slog.Int64("id", user.ID))

	// Re-read so the response carries the store-assigned created_at.
	return s.users.GetUserByID(ctx, user.ID)
}

// Update validates the input and overwrites the user's name and email.
// A missing user is apperror.ErrNotFound; an email owned by another
// user is apperror.ErrConflict.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*model.User, error) {
	user, err := validateUser(in)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}

	s.logger.Info("user updated", slog.Int64("id", id))

	return s.users.GetUserByID(ctx, id)
}

// Delete removes the user. Their articles stay in the store.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}

	s.logger.Info("user deleted", slog.Int64("id", id))
	return nil
}

// validateUser checks the input and returns the user to store. Blank checks
// ignore surrounding whitespace; the stored values are exactly what was sent.
func validateUser(in UserInput) (*model.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperror.ValidationFailed("Name cannot be empty")
	}

	if strings.TrimSpace(in.Email) == "" {
		return nil, apperror.ValidationFailed("Email cannot be empty")
	}
	if !validEmail(in.Email) {
		return nil, apperror.ValidationFailed("EMAIL not valid")
	}

	return &model.User{Name: in.Name, Email: in.Email}, nil
}
