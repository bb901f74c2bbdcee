package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendGradeEvent(ctx context.Context, data GradeEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO grade_events
		(sequence, timestamp, user_name, problem_id, language, level, correct,
		 oracle_failed, points_awarded, penalty, feedback)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.UserName, data.ProblemID, data.Language,
		data.Level, data.Correct, data.OracleFailed, data.PointsAwarded, data.Penalty,
		data.Feedback,
	)
	if err != nil {
		return fmt.Errorf("save grade event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGradeEvents(ctx context.Context, userName string, opts QueryOpts) ([]GradeEventRecord, error) {
	clause, args := appendClauses(opts, []string{"user_name = ?"}, []any{userName})
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, user_name, problem_id,
		language, level, correct, oracle_failed, points_awarded, penalty, feedback
		FROM grade_events`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query grade events: %w", err)
	}
	defer rows.Close()

	var out []GradeEventRecord
	for rows.Next() {
		var (
			rec GradeEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.UserName, &rec.ProblemID,
			&rec.Language, &rec.Level, &rec.Correct, &rec.OracleFailed,
			&rec.PointsAwarded, &rec.Penalty, &rec.Feedback); err != nil {
			return nil, fmt.Errorf("scan grade event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}
