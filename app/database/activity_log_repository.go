package database

import (
	"context"
	"fmt"
)

// ActivityLogRepo handles the append-only LLM usage audit log
type ActivityLogRepo struct {
	db *DB
}

var _ ActivityLogRepository = (*ActivityLogRepo)(nil)

func NewActivityLogRepo(db *DB) *ActivityLogRepo {
	return &ActivityLogRepo{db: db}
}

func (r *ActivityLogRepo) InsertActivityLog(ctx context.Context, articleID int64, provider string, tokensUsed int, costEstimate float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ai_activity_logs (article_id, llm_provider, tokens_used, cost_estimate)
		VALUES ($1, $2, $3, $4)
	`, articleID, provider, tokensUsed, costEstimate)

	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}
