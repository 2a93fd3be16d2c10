package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/avoronkov/newsbrief/app/database"
)

var (
	// ErrNoActiveSources fails a run before any work begins.
	ErrNoActiveSources = errors.New("no active sources found")

	// ErrRunInProgress rejects a trigger that would overlap a running pass.
	ErrRunInProgress = errors.New("an ingestion run is already in progress")
)

// Orchestrator drives one ingestion pass: load active sources, fetch raw
// items per source, filter duplicates, summarize and categorize survivors,
// persist them, and write one activity log entry per stored article.
type Orchestrator struct {
	sources     database.SourceRepository
	articles    database.ArticleRepository
	activityLog database.ActivityLogRepository
	fetcher     FetcherInterface
	dedup       *Deduplicator
	summarizer  SummarizerInterface
	categorizer *Categorizer
	extractor   ExtractorInterface // nil unless content extraction is enabled

	running atomic.Bool
}

func NewOrchestrator(sources database.SourceRepository, articles database.ArticleRepository,
	activityLog database.ActivityLogRepository, fetcher FetcherInterface, dedup *Deduplicator,
	summarizer SummarizerInterface, extractor ExtractorInterface) *Orchestrator {
	return &Orchestrator{
		sources:     sources,
		articles:    articles,
		activityLog: activityLog,
		fetcher:     fetcher,
		dedup:       dedup,
		summarizer:  summarizer,
		categorizer: NewCategorizer(),
		extractor:   extractor,
	}
}

// Run executes one ingestion pass. Sources are processed sequentially, and
// items within a source one at a time: summarization is rate and cost
// sensitive, and its retries already serialize latency. At most one run
// executes at a time; overlapping triggers get ErrRunInProgress.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer o.running.Store(false)

	started := time.Now()

	activeSources, err := o.sources.GetActiveSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active sources: %w", err)
	}
	if len(activeSources) == 0 {
		return nil, ErrNoActiveSources
	}

	report := &Report{
		Sources: make([]SourceReport, 0, len(activeSources)),
	}

	for _, source := range activeSources {
		slog.Info("Processing source", "source", source.Name, "type", string(source.Type))

		items, err := o.fetcher.Run(ctx, source)
		if err != nil {
			slog.Error("Source fetch failed", "source", source.Name, "error", err)
			report.Sources = append(report.Sources, SourceReport{
				Source: source.Name,
				Error:  err.Error(),
			})
			continue
		}

		sourceReport := o.processItems(ctx, source, items)
		report.TotalIngested += sourceReport.Ingested
		report.TotalSkipped += sourceReport.Skipped
		report.Sources = append(report.Sources, sourceReport)
	}

	slog.Info("Ingestion run completed",
		"duration", time.Since(started),
		"sources", len(activeSources),
		"ingested", report.TotalIngested,
		"skipped", report.TotalSkipped)

	return report, nil
}

func (o *Orchestrator) processItems(ctx context.Context, source database.Source, items []RawItem) SourceReport {
	sourceReport := SourceReport{
		Source: source.Name,
		Total:  len(items),
	}

	for _, item := range items {
		if o.dedup.Run(ctx, item.URL) {
			sourceReport.Skipped++
			continue
		}

		content := o.itemContent(ctx, item)

		summary, err := o.summarizer.Summarize(ctx, content)
		if err != nil {
			// Item-scoped failure: logged, not counted in either bucket.
			slog.Error("Summarization failed, skipping item",
				"source", source.Name, "url", item.URL, "error", err)
			continue
		}

		category := o.categorizer.Run(item)

		articleID, err := o.articles.InsertArticle(ctx, database.NewArticle{
			Title:       item.Title,
			Summary:     summary.Text,
			Category:    string(category),
			Source:      source.Name,
			URL:         item.URL,
			ImageURL:    item.ImageURL,
			PublishedAt: item.PublishedAt,
		})
		if err != nil {
			slog.Error("Article insert failed", "source", source.Name, "url", item.URL, "error", err)
			continue
		}
		if articleID == 0 {
			// Lost the race with a concurrent run; the unique constraint on
			// the canonical URL is the authoritative duplicate signal.
			slog.Debug("Insert conflict, URL already stored", "url", item.URL)
			sourceReport.Skipped++
			continue
		}

		err = o.activityLog.InsertActivityLog(ctx, articleID, o.summarizer.Provider(),
			summary.TokensUsed, summary.CostEstimate)
		if err != nil {
			// The article row stands; no transaction spans the two writes.
			slog.Warn("Activity log write failed", "article_id", articleID, "error", err)
		}

		sourceReport.Ingested++
	}

	return sourceReport
}

// itemContent returns the text to summarize, replacing thin feed content with
// extracted page text when extraction is enabled.
func (o *Orchestrator) itemContent(ctx context.Context, item RawItem) string {
	if o.extractor == nil || len(item.Content) >= minContentChars {
		return item.Content
	}

	extracted, err := o.extractor.Run(ctx, item.URL)
	if err != nil {
		slog.Debug("Content extraction failed, using feed content", "url", item.URL, "error", err)
		return item.Content
	}

	return extracted
}
