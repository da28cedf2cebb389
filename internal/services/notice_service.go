package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NoticeService struct {
	notices NoticeStore
	now     func() time.Time
}

func NewNoticeService(notices NoticeStore) *NoticeService {
	return &NoticeService{notices: notices, now: time.Now}
}

// ForActor returns the dashboard notices of a client, or every notice for staff.
func (s *NoticeService) ForActor(ctx context.Context, actor Actor) ([]models.Notice, error) {
	if actor.IsStaff() {
		return s.notices.ListAll(ctx)
	}
	return s.notices.ListForClient(ctx, actor.UserID)
}

func (s *NoticeService) All(ctx context.Context) ([]models.Notice, error) {
	return s.notices.ListAll(ctx)
}

func (s *NoticeService) Create(ctx context.Context, actor Actor, req dto.NoticeRequest) (*models.Notice, error) {
	clientID, err := validateNotice(req)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	n := &models.Notice{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Link:        strings.TrimSpace(req.Link),
		ClientID:    clientID,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notices.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("insert notice: %w", err)
	}
	return n, nil
}

func (s *NoticeService) Update(ctx context.Context, id string, req dto.NoticeRequest) (*models.Notice, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	clientID, err := validateNotice(req)
	if err != nil {
		return nil, err
	}
	n, err := s.notices.Update(ctx, oid, bson.M{
		"title":       strings.TrimSpace(req.Title),
		"description": strings.TrimSpace(req.Description),
		"link":        strings.TrimSpace(req.Link),
		"client_id":   clientID,
		"updated_at":  s.now().UTC(),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return n, err
}

func (s *NoticeService) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.notices.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validateNotice(req dto.NoticeRequest) (*bson.ObjectID, error) {
	verr := &forms.ValidationError{}
	if strings.TrimSpace(req.Title) == "" {
		verr.Add("", "title", "is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		verr.Add("", "description", "is required")
	}
	if link := strings.TrimSpace(req.Link); link != "" {
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			verr.Add("", "link", "must be an http(s) URL")
		}
	}

	var clientID *bson.ObjectID
	if req.ClientID != nil && *req.ClientID != "" {
		oid, err := bson.ObjectIDFromHex(*req.ClientID)
		if err != nil {
			verr.Add("", "clientId", "must be a client id")
		} else {
			clientID = &oid
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return clientID, nil
}
