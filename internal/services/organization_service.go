package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"
)

type OrganizationService struct {
	store OrganizationStore
	now   func() time.Time
}

func NewOrganizationService(store OrganizationStore) *OrganizationService {
	return &OrganizationService{store: store, now: time.Now}
}

func (s *OrganizationService) Organizations(ctx context.Context) ([]models.Organization, error) {
	return s.store.ListOrganizations(ctx)
}

func (s *OrganizationService) Directors(ctx context.Context) ([]models.Director, error) {
	return s.store.ListDirectors(ctx)
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, req dto.OrganizationRequest) (*models.Organization, error) {
	verr := &forms.ValidationError{}
	if strings.TrimSpace(req.UserID) == "" {
		verr.Add("", "user_id", "is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("", "name", "is required")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	o := &models.Organization{
		UserID:    strings.TrimSpace(req.UserID),
		Name:      strings.TrimSpace(req.Name),
		Type:      req.Type,
		GSTIN:     strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		City:      req.City,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.InsertOrganization(ctx, o); err != nil {
		return nil, fmt.Errorf("insert organization: %w", err)
	}
	return o, nil
}

func (s *OrganizationService) CreateDirector(ctx context.Context, req dto.DirectorRequest) (*models.Director, error) {
	verr := &forms.ValidationError{}
	if strings.TrimSpace(req.OrganizationUserID) == "" {
		verr.Add("", "organizationUserId", "is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("", "name", "is required")
	}
	if req.Email != "" && !forms.ValidEmail(req.Email) {
		verr.Add("", "email", "must be a valid email address")
	}
	if req.Phone != "" && !forms.ValidPhone(req.Phone) {
		verr.Add("", "phone", "must be a 10 digit mobile number")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	d := &models.Director{
		OrganizationUserID: strings.TrimSpace(req.OrganizationUserID),
		Name:               strings.TrimSpace(req.Name),
		DIN:                req.DIN,
		Email:              req.Email,
		Phone:              req.Phone,
		Designation:        req.Designation,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.store.InsertDirector(ctx, d); err != nil {
		return nil, fmt.Errorf("insert director: %w", err)
	}
	return d, nil
}
