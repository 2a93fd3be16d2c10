package ingest

import (
	"context"

	"github.com/avoronkov/newsbrief/app/database"
	"github.com/avoronkov/newsbrief/app/llm"
)

type FetcherInterface interface {
	Run(ctx context.Context, source database.Source) ([]RawItem, error)
}

var _ FetcherInterface = (*Fetcher)(nil)

type SummarizerInterface interface {
	Summarize(ctx context.Context, content string) (*llm.Summary, error)
	Provider() string
}

var _ SummarizerInterface = (*llm.Summarizer)(nil)

type ExtractorInterface interface {
	Run(ctx context.Context, pageURL string) (string, error)
}

var _ ExtractorInterface = (*ContentExtractor)(nil)
