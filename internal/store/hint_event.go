package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO hint_events
		(sequence, timestamp, user_name, problem_id, cost, hint_text)
		VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.UserName, data.ProblemID, data.Cost, data.HintText,
	)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}
