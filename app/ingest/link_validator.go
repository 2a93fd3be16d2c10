package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avoronkov/newsbrief/app/database"
)

const (
	linkCheckLimit   = 100
	linkCheckTimeout = 5 * time.Second
)

// LinkReport summarizes one link validation pass.
type LinkReport struct {
	TotalChecked int      `json:"totalChecked"`
	ValidCount   int      `json:"validCount"`
	InvalidCount int      `json:"invalidCount"`
	InvalidURLs  []string `json:"invalidUrls"`
}

// LinkValidator checks that recently stored article URLs still resolve.
type LinkValidator struct {
	articles   database.ArticleRepository
	httpClient *http.Client
	userAgent  string
}

func NewLinkValidator(articles database.ArticleRepository, httpClient *http.Client, userAgent string) *LinkValidator {
	return &LinkValidator{
		articles:   articles,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Run HEAD-checks the newest stored articles and reports valid/invalid
// counts. The first 10 invalid URLs are included in the report.
func (v *LinkValidator) Run(ctx context.Context) (*LinkReport, error) {
	articles, err := v.articles.GetRecentArticleURLs(ctx, linkCheckLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load article URLs: %w", err)
	}

	report := &LinkReport{
		TotalChecked: len(articles),
		InvalidURLs:  []string{},
	}

	for _, article := range articles {
		if err := v.checkURL(ctx, article.URL); err != nil {
			slog.Debug("Invalid article URL", "url", article.URL, "error", err)
			report.InvalidCount++
			if len(report.InvalidURLs) < 10 {
				report.InvalidURLs = append(report.InvalidURLs, article.URL)
			}
			continue
		}
		report.ValidCount++
	}

	return report, nil
}

func (v *LinkValidator) checkURL(ctx context.Context, url string) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, linkCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to check URL: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	return nil
}
