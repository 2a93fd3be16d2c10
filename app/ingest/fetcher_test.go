package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avoronkov/newsbrief/app/database"
)

func rssFeed(itemCount int) string {
	var items strings.Builder
	for i := 1; i <= itemCount; i++ {
		fmt.Fprintf(&items, `
    <item>
      <title>Item %d</title>
      <link>https://example.com/item%d</link>
      <description>Description %d</description>
      <pubDate>Mon, 03 Jul 2023 %02d:00:00 GMT</pubDate>
    </item>`, i, i, i, i%24)
	}

	return `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Feed Description</description>` + items.String() + `
  </channel>
</rss>`
}

func TestFetcher_RSS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed(3))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	items, err := fetcher.Run(context.Background(), database.Source{
		Name:     "test",
		Type:     database.SourceTypeRSS,
		Endpoint: server.URL,
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	if items[0].Title != "Item 1" {
		t.Errorf("Expected title 'Item 1', got %q", items[0].Title)
	}
	if items[0].URL != "https://example.com/item1" {
		t.Errorf("Expected URL 'https://example.com/item1', got %q", items[0].URL)
	}
	if items[0].Content != "Description 1" {
		t.Errorf("Expected content 'Description 1', got %q", items[0].Content)
	}
	if items[0].PublishedAt.IsZero() {
		t.Error("Expected published time to be set")
	}
}

func TestFetcher_RSSTruncatesToTen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(15))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	items, err := fetcher.Run(context.Background(), database.Source{
		Type:     database.SourceTypeRSS,
		Endpoint: server.URL,
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 10 {
		t.Errorf("Expected at most 10 items from a 15-entry feed, got %d", len(items))
	}
}

func TestFetcher_RSSSkipsItemsWithoutTitleOrLink(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Feed Description</description>
    <item>
      <title>Has both</title>
      <link>https://example.com/ok</link>
    </item>
    <item>
      <description>No title and no link</description>
    </item>
    <item>
      <title>No link at all</title>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feed)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	items, err := fetcher.Run(context.Background(), database.Source{
		Type:     database.SourceTypeRSS,
		Endpoint: server.URL,
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Has both" {
		t.Errorf("Expected the complete item to survive, got %q", items[0].Title)
	}
}

func TestFetcher_RSSEnclosureImage(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Feed Description</description>
    <item>
      <title>With enclosure</title>
      <link>https://example.com/enc</link>
      <enclosure url="https://example.com/img.jpg" length="1024" type="image/jpeg"/>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feed)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	items, err := fetcher.Run(context.Background(), database.Source{
		Type:     database.SourceTypeRSS,
		Endpoint: server.URL,
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].ImageURL != "https://example.com/img.jpg" {
		t.Errorf("Expected enclosure image URL, got %q", items[0].ImageURL)
	}
}

func TestFetcher_API(t *testing.T) {
	payload := `{
		"articles": [
			{
				"title": "API Article",
				"description": "From the API",
				"url": "https://example.com/api1",
				"publishedAt": "2023-07-03T10:00:00Z",
				"urlToImage": "https://example.com/api1.jpg"
			},
			{
				"description": "Missing title",
				"url": "https://example.com/api2"
			}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	items, err := fetcher.Run(context.Background(), database.Source{
		Type:     database.SourceTypeAPI,
		Endpoint: server.URL,
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item (entry without title skipped), got %d", len(items))
	}

	item := items[0]
	if item.Title != "API Article" {
		t.Errorf("Expected title 'API Article', got %q", item.Title)
	}
	if item.Content != "From the API" {
		t.Errorf("Expected description as content, got %q", item.Content)
	}
	if item.ImageURL != "https://example.com/api1.jpg" {
		t.Errorf("Expected urlToImage fallback, got %q", item.ImageURL)
	}

	expected := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	if !item.PublishedAt.Equal(expected) {
		t.Errorf("Expected published at %v, got %v", expected, item.PublishedAt)
	}
}

func TestFetcher_APIBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	_, err := fetcher.Run(context.Background(), database.Source{
		Type:     database.SourceTypeAPI,
		Endpoint: server.URL,
	})

	if err == nil {
		t.Error("Expected error for non-2xx response")
	}
}

func TestFetcher_CustomAndEmptyEndpoint(t *testing.T) {
	fetcher := NewFetcher(http.DefaultClient, "test-agent")

	items, err := fetcher.Run(context.Background(), database.Source{
		Type:     database.SourceTypeCustom,
		Endpoint: "https://example.com/custom",
	})
	if err != nil {
		t.Errorf("Expected no error for custom source, got: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items for custom source, got %d", len(items))
	}

	items, err = fetcher.Run(context.Background(), database.Source{
		Type: database.SourceTypeRSS,
	})
	if err != nil {
		t.Errorf("Expected no error for missing endpoint, got: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items for missing endpoint, got %d", len(items))
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		if got := stripHTML(tt.input); got != tt.expected {
			t.Errorf("stripHTML(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
