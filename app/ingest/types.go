package ingest

import (
	"time"
)

// RawItem is an unpersisted candidate article normalized from a source.
// It lives only for the duration of a single ingestion pass.
type RawItem struct {
	Title       string
	Content     string
	URL         string // canonical URL, the dedup key
	PublishedAt time.Time
	ImageURL    string
}

type Category string

const (
	CategoryLLMs     Category = "llms"
	CategoryCV       Category = "cv"
	CategoryML       Category = "ml"
	CategoryAGI      Category = "agi"
	CategoryRobotics Category = "robotics"
	CategoryAgents   Category = "agents"
	CategoryNLP      Category = "nlp"
)

// SourceReport is the per-source line of a run report. Error is set instead
// of the counters when the source failed as a whole.
type SourceReport struct {
	Source   string `json:"source"`
	Ingested int    `json:"ingested"`
	Skipped  int    `json:"skipped"`
	Total    int    `json:"total"`
	Error    string `json:"error,omitempty"`
}

// Report aggregates one ingestion run.
type Report struct {
	TotalIngested int            `json:"totalIngested"`
	TotalSkipped  int            `json:"totalSkipped"`
	Sources       []SourceReport `json:"sources"`
}
