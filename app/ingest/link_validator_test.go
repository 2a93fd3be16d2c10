package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avoronkov/newsbrief/app/database"
)

func TestLinkValidatorRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("Expected HEAD request, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/ok", "/also-ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusGone)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	repo := &fakeArticleRepo{
		articles: []database.Article{
			{ID: 1, URL: server.URL + "/ok"},
			{ID: 2, URL: server.URL + "/gone"},
			{ID: 3, URL: server.URL + "/also-ok"},
			{ID: 4, URL: server.URL + "/missing"},
		},
	}
	validator := NewLinkValidator(repo, server.Client(), "NewsBrief/1.0")

	report, err := validator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.TotalChecked != 4 {
		t.Errorf("Expected 4 checked, got %d", report.TotalChecked)
	}
	if report.ValidCount != 2 {
		t.Errorf("Expected 2 valid, got %d", report.ValidCount)
	}
	if report.InvalidCount != 2 {
		t.Errorf("Expected 2 invalid, got %d", report.InvalidCount)
	}
	if len(report.InvalidURLs) != 2 {
		t.Fatalf("Expected 2 invalid URLs, got %d", len(report.InvalidURLs))
	}
	if report.InvalidURLs[0] != server.URL+"/gone" {
		t.Errorf("Unexpected first invalid URL: %s", report.InvalidURLs[0])
	}
}

func TestLinkValidatorUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable := server.URL
	server.Close()

	repo := &fakeArticleRepo{
		articles: []database.Article{{ID: 1, URL: unreachable + "/article"}},
	}
	validator := NewLinkValidator(repo, &http.Client{}, "NewsBrief/1.0")

	report, err := validator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.InvalidCount != 1 || report.ValidCount != 0 {
		t.Errorf("Expected unreachable URL counted invalid, got %+v", report)
	}
}

func TestLinkValidatorCapsReportedURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	repo := &fakeArticleRepo{}
	for i := 0; i < 15; i++ {
		repo.articles = append(repo.articles, database.Article{
			ID:  int64(i + 1),
			URL: server.URL + "/dead-" + string(rune('a'+i)),
		})
	}
	validator := NewLinkValidator(repo, server.Client(), "NewsBrief/1.0")

	report, err := validator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.InvalidCount != 15 {
		t.Errorf("Expected 15 invalid, got %d", report.InvalidCount)
	}
	if len(report.InvalidURLs) != 10 {
		t.Errorf("Expected report capped at 10 URLs, got %d", len(report.InvalidURLs))
	}
}

func TestLinkValidatorEmptyStore(t *testing.T) {
	validator := NewLinkValidator(&fakeArticleRepo{}, &http.Client{}, "NewsBrief/1.0")

	report, err := validator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.TotalChecked != 0 || report.InvalidCount != 0 || report.ValidCount != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}
