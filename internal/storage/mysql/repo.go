package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"daraz_reviews/internal/domain"
)

const maxListLimit = 100

// Repo is the MySQL-backed analysis history.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Record(ctx context.Context, rec domain.AnalysisRecord) error {
	issues := rec.Issues
	if issues == nil {
		issues = []domain.IssueCount{}
	}
	b, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	_, err = r.db.ExecContext(ctx, insertAnalysisSQL,
		rec.ID,
		rec.ProductID,
		rec.MaxPages,
		rec.Total,
		rec.Positive,
		rec.Negative,
		rec.Neutral,
		string(b),
		rec.FailedPages,
		rec.CreatedAt,
	)
	return err
}

func (r *Repo) ListRecent(ctx context.Context, productID string, limit int) ([]domain.AnalysisRecord, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	rows, err := r.db.QueryContext(ctx, listAnalysesSQL, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AnalysisRecord
	for rows.Next() {
		var rec domain.AnalysisRecord
		var issuesJSON []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.ProductID,
			&rec.MaxPages,
			&rec.Total,
			&rec.Positive,
			&rec.Negative,
			&rec.Neutral,
			&issuesJSON,
			&rec.FailedPages,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(issuesJSON) > 0 {
			if err := json.Unmarshal(issuesJSON, &rec.Issues); err != nil {
				return nil, fmt.Errorf("decode issues for %s: %w", rec.ID, err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
