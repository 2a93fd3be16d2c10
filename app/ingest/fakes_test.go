package ingest

import (
	"context"
	"fmt"

	"github.com/avoronkov/newsbrief/app/database"
	"github.com/avoronkov/newsbrief/app/llm"
)

type fakeSourceRepo struct {
	sources []database.Source
	err     error
}

func (f *fakeSourceRepo) GetActiveSources(ctx context.Context) ([]database.Source, error) {
	if f.err != nil {
		return nil, f.err
	}
	var active []database.Source
	for _, source := range f.sources {
		if source.IsActive {
			active = append(active, source)
		}
	}
	return active, nil
}

func (f *fakeSourceRepo) GetAllSources(ctx context.Context) ([]database.Source, error) {
	return f.sources, f.err
}

func (f *fakeSourceRepo) GetSourceCount(ctx context.Context) (int, int, error) {
	active := 0
	for _, source := range f.sources {
		if source.IsActive {
			active++
		}
	}
	return len(f.sources), active, f.err
}

func (f *fakeSourceRepo) UpsertSource(ctx context.Context, name string, sourceType database.SourceType, endpoint string, isActive bool) error {
	return f.err
}

type fakeArticleRepo struct {
	articles  []database.Article
	nextID    int64
	existsErr error
	insertErr error
}

func (f *fakeArticleRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, article := range f.articles {
		if article.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeArticleRepo) InsertArticle(ctx context.Context, article database.NewArticle) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	for _, existing := range f.articles {
		if existing.URL == article.URL {
			return 0, nil // unique constraint conflict
		}
	}
	f.nextID++
	f.articles = append(f.articles, database.Article{
		ID:          f.nextID,
		Title:       article.Title,
		Summary:     article.Summary,
		Category:    article.Category,
		Source:      article.Source,
		URL:         article.URL,
		ImageURL:    article.ImageURL,
		PublishedAt: article.PublishedAt,
	})
	return f.nextID, nil
}

func (f *fakeArticleRepo) GetArticle(ctx context.Context, id int64) (*database.Article, error) {
	for _, article := range f.articles {
		if article.ID == id {
			return &article, nil
		}
	}
	return nil, nil
}

func (f *fakeArticleRepo) GetArticles(ctx context.Context, category string, limit int) ([]database.Article, error) {
	return f.articles, nil
}

func (f *fakeArticleRepo) GetRecentArticleURLs(ctx context.Context, limit int) ([]database.Article, error) {
	if limit < len(f.articles) {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

func (f *fakeArticleRepo) GetArticleCount(ctx context.Context) (int, error) {
	return len(f.articles), nil
}

type fakeActivityLogRepo struct {
	logs []database.ActivityLog
	err  error
}

func (f *fakeActivityLogRepo) InsertActivityLog(ctx context.Context, articleID int64, provider string, tokensUsed int, costEstimate float64) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, database.ActivityLog{
		ArticleID:    &articleID,
		LLMProvider:  provider,
		TokensUsed:   tokensUsed,
		CostEstimate: costEstimate,
	})
	return nil
}

type fakeSummarizer struct {
	calls   int
	failFor map[string]bool // content values that always fail
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, content string) (*llm.Summary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.failFor[content] {
		return nil, fmt.Errorf("summarization failed: failed after 3 attempts: mock failure")
	}
	return &llm.Summary{
		Text:         "Summary of: " + content,
		TokensUsed:   100,
		CostEstimate: 0.0001,
	}, nil
}

func (f *fakeSummarizer) Provider() string {
	return "openai-test-model"
}

type fakeFetcher struct {
	itemsBySource map[string][]RawItem
	errsBySource  map[string]error
}

func (f *fakeFetcher) Run(ctx context.Context, source database.Source) ([]RawItem, error) {
	if err := f.errsBySource[source.Name]; err != nil {
		return nil, err
	}
	return f.itemsBySource[source.Name], nil
}
