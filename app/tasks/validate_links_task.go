package tasks

import (
	"context"
	"log/slog"

	"github.com/avoronkov/newsbrief/app/ingest"
)

// ValidateLinksTask HEAD-checks recently stored article URLs.
type ValidateLinksTask struct {
	Task
	validator *ingest.LinkValidator
}

func NewValidateLinksTask(validator *ingest.LinkValidator) *ValidateLinksTask {
	return &ValidateLinksTask{
		Task:      NewTask(TaskTypeValidateLinks),
		validator: validator,
	}
}

func (t *ValidateLinksTask) Execute(ctx context.Context) error {
	report, err := t.validator.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"checked", report.TotalChecked,
		"valid", report.ValidCount,
		"invalid", report.InvalidCount)

	return nil
}
