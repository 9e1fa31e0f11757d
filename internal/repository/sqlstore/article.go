package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.ArticleRepository = (*ArticleDB)(nil)

// ArticleDB handles all article-related database operations.
type ArticleDB struct {
	db *DB
}

// selectDetail is the join every enriched read shares. An article whose
// owner has been deleted has nothing to join and drops out of the result.
const selectDetail = `SELECT a.id, a.title, a.content, a.user_id, a.created_at,
	u.id, u.name, u.email
 FROM articles a
 JOIN users u ON u.id = a.user_id`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDetail(s rowScanner) (model.ArticleDetail, error) {
	var d model.ArticleDetail
	err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.UserID,
		&d.CreatedAt,
		&d.Author.ID,
		&d.Author.Name,
		&d.Author.Email,
	)
	return d, err
}

// CreateArticle inserts the article only if its owner exists.
//
// CONDITIONAL INSERT:
// INSERT ... SELECT ... FROM users WHERE id = ? produces zero rows when the
// user is missing, so nothing is written and RETURNING yields sql.ErrNoRows.
// The existence check and the write are one statement, so a user deleted
// in between cannot end up owning a new article. The casts give PostgreSQL
// a type for the select-list parameters.
func (a *ArticleDB) CreateArticle(ctx context.Context, article *model.Article) error {
	err := a.db.conn.QueryRowContext(ctx,
		a.db.rebind(`INSERT INTO articles (title, content, user_id)
		 SELECT CAST(? AS TEXT), CAST(? AS TEXT), id FROM users WHERE id = ?
		 RETURNING id`),
		article.Title,
		article.Content,
		article.UserID,
	).Scan(&article.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NotFound("User")
		}
		return fmt.Errorf("sqlstore: creating article: %w", err)
	}
	return nil
}

// GetArticleByID returns the article joined with its owner.
func (a *ArticleDB) GetArticleByID(ctx context.Context, id int64) (*model.ArticleDetail, error) {
	row := a.db.conn.QueryRowContext(ctx,
		a.db.rebind(selectDetail+` WHERE a.id = ?`),
		id,
	)
	d, err := scanDetail(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Article")
		}
		return nil, fmt.Errorf("sqlstore: getting article %d: %w", id, err)
	}
	return &d, nil
}

// ListArticles returns every article with its owner, in id order.
// Unpaged; only the per-user listing takes a limit.
func (a *ArticleDB) ListArticles(ctx context.Context) ([]model.ArticleDetail, error) {
	rows, err := a.db.conn.QueryContext(ctx, selectDetail+` ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing articles: %w", err)
	}
	defer rows.Close()

	articles := []model.ArticleDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: scanning article row: %w", err)
		}
		articles = append(articles, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating article rows: %w", err)
	}

	return articles, nil
}

// ListArticlesByUser returns one page of a user's articles, in id order.
func (a *ArticleDB) ListArticlesByUser(ctx context.Context, userID int64, opts repository.ListOptions) ([]model.Article, error) {
	rows, err := a.db.conn.QueryContext(ctx,
		a.db.rebind(`SELECT id, title, content, user_id, created_at
		 FROM articles
		 WHERE user_id = ?
		 ORDER BY id
		 LIMIT ? OFFSET ?`),
		userID,
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing articles of user %d: %w", userID, err)
	}
	defer rows.Close()

	articles := make([]model.Article, 0, opts.Limit)
	for rows.Next() {
		var art model.Article
		if err := rows.Scan(&art.ID, &art.Title, &art.Content, &art.UserID, &art.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning article row: %w", err)
		}
		articles = append(articles, art)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating article rows: %w", err)
	}

	return articles, nil
}

func (a *ArticleDB) CountArticlesByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := a.db.conn.QueryRowContext(ctx,
		a.db.rebind(`SELECT COUNT(*) FROM articles WHERE user_id = ?`),
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: counting articles of user %d: %w", userID, err)
	}
	return n, nil
}

// UpdateArticle rewrites title, content and owner in one conditional
// statement that only matches when the new owner exists.
//
// When nothing was updated we still need to say WHICH thing is missing.
// A follow-up probe on articles picks between the two 404s, with a missing
// article taking precedence. It only chooses the message; the write itself
// has already been refused.
func (a *ArticleDB) UpdateArticle(ctx context.Context, article *model.Article) error {
	result, err := a.db.conn.ExecContext(ctx,
		a.db.rebind(`UPDATE articles SET title = ?, content = ?, user_id = ?
		 WHERE id = ? AND EXISTS (SELECT 1 FROM users WHERE id = ?)`),
		article.Title,
		article.Content,
		article.UserID,
		article.ID,
		article.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: updating article %d: %w", article.ID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: reading rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var articleExists bool
	err = a.db.conn.QueryRowContext(ctx,
		a.db.rebind(`SELECT EXISTS (SELECT 1 FROM articles WHERE id = ?)`),
		article.ID,
	).Scan(&articleExists)
	if err != nil {
		return fmt.Errorf("sqlstore: checking article %d: %w", article.ID, err)
	}
	if !articleExists {
		return apperror.NotFound("Article")
	}
	return apperror.NotFound("User")
}

func (a *ArticleDB) DeleteArticle(ctx context.Context, id int64) error {
	result, err := a.db.conn.ExecContext(ctx,
		a.db.rebind(`DELETE FROM articles WHERE id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: deleting article %d: %w", id, err)
	}

	return expectAffected(result, "Article")
}
