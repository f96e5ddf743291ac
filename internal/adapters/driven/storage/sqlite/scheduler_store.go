package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/ventas-cli/internal/core/domain"
	"github.com/custodia-labs/ventas-cli/internal/core/ports/driven"
)

// schedulerStore implements driven.SchedulerStore on the task_results table.
type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// RecordResult logs a task execution result.
func (s *schedulerStore) RecordResult(ctx context.Context, result *domain.TaskResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}

	err := s.store.withDB(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO task_results (run_id, task_id, started_at, ended_at, success, error, items_processed)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, result.ID, result.TaskID,
			result.StartedAt.UTC().Format(timeLayout),
			result.EndedAt.UTC().Format(timeLayout),
			boolToInt(result.Success),
			nullString(result.Error),
			result.ItemsProcessed)
		return err
	})
	if err != nil {
		return fmt.Errorf("recording task result: %w", err)
	}
	return nil
}

// GetTaskHistory returns recent results for a task, most recent first.
func (s *schedulerStore) GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	if limit <= 0 {
		limit = -1
	}

	var results []domain.TaskResult
	err := s.store.withExistingDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT run_id, task_id, started_at, ended_at, success, error, items_processed
			FROM task_results
			WHERE task_id = ?
			ORDER BY started_at DESC, id DESC
			LIMIT ?
		`, taskID, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			result, err := scanTaskResult(rows)
			if err != nil {
				return err
			}
			results = append(results, *result)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("querying task history: %w", err)
	}
	return results, nil
}

// PruneHistory keeps the most recent 'keep' results per task.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	err := s.store.withDB(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			DELETE FROM task_results
			WHERE id NOT IN (
				SELECT id FROM (
					SELECT id, ROW_NUMBER() OVER (PARTITION BY task_id ORDER BY started_at DESC, id DESC) as rn
					FROM task_results
				) WHERE rn <= ?
			)
		`, keep)
		return err
	})
	if err != nil {
		return fmt.Errorf("pruning task history: %w", err)
	}
	return nil
}

// scanTaskResult scans a task result from *sql.Rows.
func scanTaskResult(rows *sql.Rows) (*domain.TaskResult, error) {
	var result domain.TaskResult
	var startedAt, endedAt string
	var success int
	var errMsg sql.NullString

	if err := rows.Scan(&result.ID, &result.TaskID, &startedAt, &endedAt,
		&success, &errMsg, &result.ItemsProcessed); err != nil {
		return nil, fmt.Errorf("scanning task result: %w", err)
	}

	if t, err := time.Parse(timeLayout, startedAt); err == nil {
		result.StartedAt = t
	}
	if t, err := time.Parse(timeLayout, endedAt); err == nil {
		result.EndedAt = t
	}
	result.Success = success == 1
	if errMsg.Valid {
		result.Error = errMsg.String
	}

	return &result, nil
}
