package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// =========================================================================
// MOCK REPOSITORY
// =========================================================================
//
// mockStore implements both repository interfaces in memory, with the same
// error contract as the SQL store: taken emails are Conflicts, missing rows
// are NotFound. Setting failWith makes every call fail, which simulates a
// database outage.

type mockStore struct {
	users    map[int64]model.User
	articles map[int64]model.Article
	nextID   int64
	failWith error
}

var (
	_ repository.UserRepository    = (*mockStore)(nil)
	_ repository.ArticleRepository = (*mockStore)(nil)
)

func newMockStore() *mockStore {
	return &mockStore{
		users:    make(map[int64]model.User),
		articles: make(map[int64]model.Article),
	}
}

func (m *mockStore) emailTaken(email string, except int64) bool {
	for id, u := range m.users {
		if u.Email == email && id != except {
			return true
		}
	}
	return false
}

func (m *mockStore) CreateUser(_ context.Context, u *model.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	if m.emailTaken(u.Email, 0) {
		return apperror.Conflict("Email already exists")
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *mockStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("User")
	}
	return &u, nil
}

func (m *mockStore) ListUsers(_ context.Context, opts repository.ListOptions) ([]model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []model.User{}
	for i, id := range ids {
		if i < opts.Offset || len(out) >= opts.Limit {
			continue
		}
		out = append(out, m.users[id])
	}
	return out, nil
}

func (m *mockStore) CountUsers(_ context.Context) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return len(m.users), nil
}

func (m *mockStore) UpdateUser(_ context.Context, u *model.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	stored, ok := m.users[u.ID]
	if !ok {
		return apperror.NotFound("User")
	}
	if m.emailTaken(u.Email, u.ID) {
		return apperror.Conflict("Email already exists")
	}
	stored.Name, stored.Email = u.Name, u.Email
	m.users[u.ID] = stored
	return nil
}

func (m *mockStore) DeleteUser(_ context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("User")
	}
	delete(m.users, id)
	return nil
}

func (m *mockStore) CreateArticle(_ context.Context, a *model.Article) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[a.UserID]; !ok {
		return apperror.NotFound("User")
	}
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now()
	m.articles[a.ID] = *a
	return nil
}

func (m *mockStore) detail(a model.Article) (model.ArticleDetail, bool) {
	u, ok := m.users[a.UserID]
	if !ok {
		return model.ArticleDetail{}, false
	}
	return model.ArticleDetail{
		Article: a,
		Author:  model.Author{ID: u.ID, Name: u.Name, Email: u.Email},
	}, true
}

func (m *mockStore) GetArticleByID(_ context.Context, id int64) (*model.ArticleDetail, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	a, ok := m.articles[id]
	if !ok {
		return nil, apperror.NotFound("Article")
	}
	d, ok := m.detail(a)
	if !ok {
		return nil, apperror.NotFound("Article")
	}
	return &d, nil
}

func (m *mockStore) ListArticles(_ context.Context) ([]model.ArticleDetail, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []model.ArticleDetail{}
	for _, a := range m.articles {
		if d, ok := m.detail(a); ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) userArticles(userID int64) []model.Article {
	out := []model.Article{}
	for _, a := range m.articles {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockStore) ListArticlesByUser(_ context.Context, userID int64, opts repository.ListOptions) ([]model.Article, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	all := m.userArticles(userID)
	if opts.Offset >= len(all) {
		return []model.Article{}, nil
	}
	all = all[opts.Offset:]
	if opts.Limit < len(all) {
		all = all[:opts.Limit]
	}
	return all, nil
}

func (m *mockStore) CountArticlesByUser(_ context.Context, userID int64) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return len(m.userArticles(userID)), nil
}

func (m *mockStore) UpdateArticle(_ context.Context, a *model.Article) error {
	if m.failWith != nil {
		return m.failWith
	}
	stored, ok := m.articles[a.ID]
	if !ok {
		return apperror.NotFound("Article")
	}
	if _, ok := m.users[a.UserID]; !ok {
		return apperror.NotFound("User")
	}
	stored.Title, stored.Content, stored.UserID = a.Title, a.Content, a.UserID
	m.articles[a.ID] = stored
	return nil
}

func (m *mockStore) DeleteArticle(_ context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.articles[id]; !ok {
		return apperror.NotFound("Article")
	}
	delete(m.articles, id)
	return nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestServices(t *testing.T) (*UserService, *ArticleService, *mockStore) {
	t.Helper()
	store := newMockStore()
	logger := testLogger()
	return NewUserService(store, store, logger), NewArticleService(store, logger), store
}

// appMessage returns the client-facing message carried by err.
func appMessage(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Message
}
