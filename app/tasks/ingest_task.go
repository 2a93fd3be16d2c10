package tasks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/avoronkov/newsbrief/app/ingest"
)

// IngestTask runs one scheduled ingestion pass.
type IngestTask struct {
	Task
	orchestrator *ingest.Orchestrator
}

func NewIngestTask(orchestrator *ingest.Orchestrator) *IngestTask {
	return &IngestTask{
		Task:         NewTask(TaskTypeIngest),
		orchestrator: orchestrator,
	}
}

func (t *IngestTask) Execute(ctx context.Context) error {
	report, err := t.orchestrator.Run(ctx)
	if err != nil {
		if errors.Is(err, ingest.ErrRunInProgress) {
			// A manual trigger is running; this pass is redundant, not failed.
			slog.Debug("Skipping scheduled ingestion, run already in progress")
			return nil
		}
		return err
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"ingested", report.TotalIngested,
		"skipped", report.TotalSkipped,
		"sources", len(report.Sources))

	return nil
}
