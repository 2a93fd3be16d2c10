package database

import (
	"context"
	"time"
)

// NewArticle is the insert shape produced by the ingestion pipeline.
type NewArticle struct {
	Title       string
	Summary     string
	Category    string
	Source      string
	URL         string
	ImageURL    string
	PublishedAt time.Time
}

type SourceRepository interface {
	GetActiveSources(ctx context.Context) ([]Source, error)
	GetAllSources(ctx context.Context) ([]Source, error)
	GetSourceCount(ctx context.Context) (total, active int, err error)

	UpsertSource(ctx context.Context, name string, sourceType SourceType, endpoint string, isActive bool) error
}

type ArticleRepository interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)

	// InsertArticle returns the assigned id, or 0 when the canonical URL
	// already exists (ON CONFLICT DO NOTHING).
	InsertArticle(ctx context.Context, article NewArticle) (int64, error)

	GetArticle(ctx context.Context, id int64) (*Article, error)
	GetArticles(ctx context.Context, category string, limit int) ([]Article, error)
	GetRecentArticleURLs(ctx context.Context, limit int) ([]Article, error)
	GetArticleCount(ctx context.Context) (int, error)
}

type ActivityLogRepository interface {
	InsertActivityLog(ctx context.Context, articleID int64, provider string, tokensUsed int, costEstimate float64) error
}
