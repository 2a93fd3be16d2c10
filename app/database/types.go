package database

import (
	"time"
)

type SourceType string

const (
	SourceTypeRSS    SourceType = "rss"
	SourceTypeAPI    SourceType = "api"
	SourceTypeCustom SourceType = "custom"
)

type Source struct {
	ID        int64
	Name      string
	Type      SourceType
	Endpoint  string // empty when the endpoint column is NULL
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Article struct {
	ID          int64
	Title       string
	Summary     string
	Category    string
	Source      string // denormalized source name, not a foreign key
	URL         string // canonical URL, unique
	ImageURL    string
	PublishedAt time.Time
	CreatedAt   time.Time
}

type ActivityLog struct {
	ID           int64
	ArticleID    *int64
	LLMProvider  string
	TokensUsed   int
	CostEstimate float64
	CreatedAt    time.Time
}
