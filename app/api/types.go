package api

import (
	"context"

	"github.com/avoronkov/newsbrief/app/database"
	"github.com/avoronkov/newsbrief/app/ingest"
)

// IngestionRunner triggers one ingestion pass.
type IngestionRunner interface {
	Run(ctx context.Context) (*ingest.Report, error)
}

var _ IngestionRunner = (*ingest.Orchestrator)(nil)

// LinkValidatorInterface checks stored article URLs.
type LinkValidatorInterface interface {
	Run(ctx context.Context) (*ingest.LinkReport, error)
}

var _ LinkValidatorInterface = (*ingest.LinkValidator)(nil)

type Handler struct {
	db          *database.DB
	sourceRepo  database.SourceRepository
	articleRepo database.ArticleRepository
	runner      IngestionRunner
	validator   LinkValidatorInterface
}
