package recommend

import (
	"context"
	"database/sql"
	"encoding/json"
)

type PGHistoryRepo struct {
	DB *sql.DB
}

func (r *PGHistoryRepo) Create(ctx context.Context, run Run) error {
	top, err := json.Marshal(run.Top)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO recommendation_runs (id, user_id, mode, query, result_count, empty_code, top_results, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		run.ID,
		run.UserID,
		run.Mode,
		run.Query,
		run.ResultCount,
		run.EmptyCode,
		top,
		run.CreatedAt,
	)
	return err
}

func (r *PGHistoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Run, error) {
	const query = `
SELECT id, user_id, mode, query, result_count, empty_code, top_results, created_at
FROM recommendation_runs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		var queryText, emptyCode sql.NullString
		var top []byte
		if err := rows.Scan(
			&run.ID,
			&run.UserID,
			&run.Mode,
			&queryText,
			&run.ResultCount,
			&emptyCode,
			&top,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		run.Query = queryText.String
		run.EmptyCode = emptyCode.String
		if len(top) > 0 {
			if err := json.Unmarshal(top, &run.Top); err != nil {
				return nil, err
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
