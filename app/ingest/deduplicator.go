package ingest

import (
	"context"
	"log/slog"

	"github.com/avoronkov/newsbrief/app/database"
)

// Deduplicator checks candidate URLs against the persisted article store.
// The match is exact: no normalization of trailing slashes or query strings.
type Deduplicator struct {
	articles   database.ArticleRepository
	failClosed bool
}

// NewDeduplicator builds a deduplicator. With failClosed unset, store errors
// are treated as "not a duplicate" so transient store failures never drop new
// content; failClosed inverts the policy and skips the item instead.
func NewDeduplicator(articles database.ArticleRepository, failClosed bool) *Deduplicator {
	return &Deduplicator{
		articles:   articles,
		failClosed: failClosed,
	}
}

// Run reports whether url is already stored.
func (d *Deduplicator) Run(ctx context.Context, url string) bool {
	exists, err := d.articles.ExistsByURL(ctx, url)
	if err != nil {
		slog.Warn("Duplicate check failed", "url", url, "fail_closed", d.failClosed, "error", err)
		return d.failClosed
	}

	return exists
}

// DedupByImageURL is the secondary, display-time deduplication pass: articles
// sharing an identical image URL collapse to the first occurrence. Articles
// without an image are always kept.
func DedupByImageURL(articles []database.Article) []database.Article {
	seen := make(map[string]bool)

	deduplicated := make([]database.Article, 0, len(articles))
	for _, article := range articles {
		if article.ImageURL != "" {
			if seen[article.ImageURL] {
				continue
			}
			seen[article.ImageURL] = true
		}
		deduplicated = append(deduplicated, article)
	}

	return deduplicated
}
