package ingest

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/avoronkov/newsbrief/app/database"
)

const maxItemsPerSource = 10

// Fetcher retrieves raw candidate items from one source, branching on the
// source type and normalizing into RawItem.
type Fetcher struct {
	httpClient *http.Client
	feedParser *gofeed.Parser
	userAgent  string
}

func NewFetcher(httpClient *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		feedParser: gofeed.NewParser(),
		userAgent:  userAgent,
	}
}

// Run fetches and normalizes items from a single source. Custom sources and
// sources without an endpoint yield no items. Fetch and parse failures are
// returned to the caller, which records them per source and continues.
func (f *Fetcher) Run(ctx context.Context, source database.Source) ([]RawItem, error) {
	if source.Endpoint == "" {
		return nil, nil
	}

	switch source.Type {
	case database.SourceTypeRSS:
		return f.fetchRSS(ctx, source.Endpoint)
	case database.SourceTypeAPI:
		return f.fetchAPI(ctx, source.Endpoint)
	default:
		return nil, nil
	}
}

func (f *Fetcher) fetchRSS(ctx context.Context, endpoint string) ([]RawItem, error) {
	data, err := f.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	feed, err := f.feedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := feed.Items
	if len(entries) > maxItemsPerSource {
		entries = entries[:maxItemsPerSource]
	}

	items := make([]RawItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Title == "" || entry.Link == "" {
			continue
		}

		item := RawItem{
			Title:       entry.Title,
			Content:     stripHTML(cmp.Or(entry.Description, entry.Content, feed.Description)),
			URL:         entry.Link,
			PublishedAt: time.Now().UTC(),
		}

		if entry.PublishedParsed != nil {
			item.PublishedAt = *entry.PublishedParsed
		}

		if len(entry.Enclosures) > 0 && entry.Enclosures[0] != nil {
			item.ImageURL = entry.Enclosures[0].URL
		}

		items = append(items, item)
	}

	return items, nil
}

type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Date        string `json:"date"`
	Image       string `json:"image"`
	URLToImage  string `json:"urlToImage"`
}

type apiResponse struct {
	Articles []apiArticle `json:"articles"`
}

func (f *Fetcher) fetchAPI(ctx context.Context, endpoint string) ([]RawItem, error) {
	data, err := f.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	items := make([]RawItem, 0, len(resp.Articles))
	for _, article := range resp.Articles {
		if article.Title == "" || article.URL == "" {
			continue
		}

		items = append(items, RawItem{
			Title:       article.Title,
			Content:     stripHTML(cmp.Or(article.Description, article.Content)),
			URL:         article.URL,
			PublishedAt: parsePublishedAt(cmp.Or(article.PublishedAt, article.Date)),
			ImageURL:    cmp.Or(article.Image, article.URLToImage),
		})
	}

	return items, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

var publishedAtLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parsePublishedAt(value string) time.Time {
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// stripHTML reduces feed-provided HTML fragments to plain text. Input that
// fails to parse is returned as-is.
func stripHTML(content string) string {
	if !strings.Contains(content, "<") {
		return strings.TrimSpace(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

	return strings.TrimSpace(doc.Text())
}
