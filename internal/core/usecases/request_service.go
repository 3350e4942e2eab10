package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
)

// RequestService handles access/reservation request review.
type RequestService struct {
	requests ports.AccessRequestRepository
	campuses ports.CampusRepository
}

// NewRequestService creates a new RequestService.
func NewRequestService(requests ports.AccessRequestRepository, campuses ports.CampusRepository) *RequestService {
	return &RequestService{requests: requests, campuses: campuses}
}

// ListByStatus returns requests in one of pending, approved, rejected.
func (s *RequestService) ListByStatus(ctx context.Context, status string) ([]domain.AccessRequest, error) {
	switch status {
	case "pending", "approved", "rejected":
	default:
		return nil, fmt.Errorf("invalid status %q", status)
	}
	return s.requests.ListByStatus(ctx, status)
}

// GetByID returns a single request.
func (s *RequestService) GetByID(ctx context.Context, id string) (*domain.AccessRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// Create validates and files a new request. Requests start pending.
func (s *RequestService) Create(ctx context.Context, r *domain.AccessRequest) error {
	r.RequesterEmail = strings.ToLower(strings.TrimSpace(r.RequesterEmail))
	if r.RequesterName == "" || r.RequesterEmail == "" {
		return fmt.Errorf("requester name and email are required")
	}
	if r.Kind != "access" && r.Kind != "reservation" {
		return fmt.Errorf("invalid request kind %q", r.Kind)
	}
	if _, err := s.campuses.GetByID(ctx, r.CampusID); err != nil {
		return fmt.Errorf("campus %s not found", r.CampusID)
	}
	r.Status = "pending"
	return s.requests.Create(ctx, r)
}

// Approve marks a pending request approved.
func (s *RequestService) Approve(ctx context.Context, id, reviewer, note string) error {
	return s.review(ctx, id, "approved", reviewer, note)
}

// Reject marks a pending request rejected.
func (s *RequestService) Reject(ctx context.Context, id, reviewer, note string) error {
	return s.review(ctx, id, "rejected", reviewer, note)
}

func (s *RequestService) review(ctx context.Context, id, status, reviewer, note string) error {
	if reviewer == "" {
		return fmt.Errorf("reviewer is required")
	}
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("request %s not found", id)
	}
	if req.Status != "pending" {
		return fmt.Errorf("request already %s", req.Status)
	}
	return s.requests.Review(ctx, id, status, reviewer, note)
}
