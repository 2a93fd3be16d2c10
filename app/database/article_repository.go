package database

import (
	"context"
	"database/sql"
	"fmt"
)

// ArticleRepo handles database operations for persisted articles
type ArticleRepo struct {
	db *DB
}

var _ ArticleRepository = (*ArticleRepo)(nil)

func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// ExistsByURL checks whether an article with the given canonical URL is
// already stored. The match is exact and case-sensitive.
func (r *ArticleRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM news_articles WHERE url = $1 LIMIT 1
	`, url).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate URL: %w", err)
	}

	return true, nil
}

// InsertArticle stores a new article and returns its assigned id. The unique
// constraint on url is the authoritative duplicate signal: a conflicting
// insert returns 0 with no error.
func (r *ArticleRepo) InsertArticle(ctx context.Context, article NewArticle) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO news_articles (title, summary, category, source, url, image_url, published_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.Title, article.Summary, article.Category, article.Source,
		article.URL, article.ImageURL, article.PublishedAt).Scan(&id)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert article: %w", err)
	}

	return id, nil
}

func (r *ArticleRepo) GetArticle(ctx context.Context, id int64) (*Article, error) {
	var article Article
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, summary, category, source, url, COALESCE(image_url, ''),
		       published_at, created_at
		FROM news_articles
		WHERE id = $1
	`, id).Scan(
		&article.ID, &article.Title, &article.Summary, &article.Category,
		&article.Source, &article.URL, &article.ImageURL,
		&article.PublishedAt, &article.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &article, nil
}

// GetArticles returns the newest articles, optionally filtered by category.
func (r *ArticleRepo) GetArticles(ctx context.Context, category string, limit int) ([]Article, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, summary, category, source, url, COALESCE(image_url, ''),
		       published_at, created_at
		FROM news_articles
		WHERE $1 = '' OR category = $1
		ORDER BY published_at DESC
		LIMIT $2
	`, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// GetRecentArticleURLs returns the newest articles with id and url populated,
// used by link validation.
func (r *ArticleRepo) GetRecentArticleURLs(ctx context.Context, limit int) ([]Article, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url
		FROM news_articles
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get article URLs: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var article Article
		if err := rows.Scan(&article.ID, &article.URL); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func (r *ArticleRepo) GetArticleCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news_articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		var article Article
		err := rows.Scan(
			&article.ID, &article.Title, &article.Summary, &article.Category,
			&article.Source, &article.URL, &article.ImageURL,
			&article.PublishedAt, &article.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}
