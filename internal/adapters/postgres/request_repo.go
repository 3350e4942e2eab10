package postgres

import (
	"context"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// RequestRepo implements ports.AccessRequestRepository with pgx.
type RequestRepo struct {
	db *DB
}

// NewRequestRepo creates a new RequestRepo.
func NewRequestRepo(db *DB) *RequestRepo {
	return &RequestRepo{db: db}
}

// Create inserts a new access request.
func (r *RequestRepo) Create(ctx context.Context, req *domain.AccessRequest) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO access_requests (campus_id, requester_name, requester_email, kind, status, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, req.CampusID, req.RequesterName, req.RequesterEmail, req.Kind, req.Status, req.Note).Scan(&req.ID, &req.CreatedAt)
}

// GetByID returns an access request by UUID.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*domain.AccessRequest, error) {
	var req domain.AccessRequest
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, campus_id, requester_name, requester_email, kind, status,
		       COALESCE(note, ''), COALESCE(reviewed_by, ''), COALESCE(review_note, ''),
		       reviewed_at, created_at
		FROM access_requests WHERE id = $1
	`, id).Scan(&req.ID, &req.CampusID, &req.RequesterName, &req.RequesterEmail, &req.Kind,
		&req.Status, &req.Note, &req.ReviewedBy, &req.ReviewNote, &req.ReviewedAt, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByStatus returns access requests in a status, oldest first.
func (r *RequestRepo) ListByStatus(ctx context.Context, status string) ([]domain.AccessRequest, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, campus_id, requester_name, requester_email, kind, status,
		       COALESCE(note, ''), COALESCE(reviewed_by, ''), COALESCE(review_note, ''),
		       reviewed_at, created_at
		FROM access_requests
		WHERE status = $1
		ORDER BY created_at
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.AccessRequest
	for rows.Next() {
		var req domain.AccessRequest
		if err := rows.Scan(&req.ID, &req.CampusID, &req.RequesterName, &req.RequesterEmail, &req.Kind,
			&req.Status, &req.Note, &req.ReviewedBy, &req.ReviewNote, &req.ReviewedAt, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Review records the reviewer's decision on a request.
func (r *RequestRepo) Review(ctx context.Context, id, status, reviewer, note string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE access_requests
		SET status = $2, reviewed_by = $3, review_note = $4, reviewed_at = now()
		WHERE id = $1
	`, id, status, reviewer, note)
	return err
}
