package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/crucial707/scim-provision/internal/models"
)

// AuditRepo persists the request/response audit log. Write-only from the
// protocol layer's perspective; the list and purge operations serve the
// operator surface.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record appends one audit row. method must already be lowercased; the store
// assigns the timestamp.
func (r *AuditRepo) Record(ctx context.Context, method, path, requestBody, responseBody string, statusCode int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO request_log (method, path, request_body, response_body, response_status_code) VALUES ($1, $2, $3, $4, $5)`,
		method, path, requestBody, responseBody, statusCode,
	)
	return err
}

// List returns recent audit records, newest first.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]models.AuditRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, method, path, request_body, response_body, response_status_code FROM request_log ORDER BY timestamp DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AuditRecord
	for rows.Next() {
		var rec models.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Method, &rec.Path, &rec.RequestBody, &rec.ResponseBody, &rec.StatusCode); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PurgeOlderThan deletes audit rows with a timestamp before cutoff and
// returns how many were removed.
func (r *AuditRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM request_log WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
