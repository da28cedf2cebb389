package services

import (
	"context"
	"fmt"
	"time"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"

	"github.com/google/uuid"
)

// PaymentService exposes the package catalog and records package purchases.
type PaymentService struct {
	catalog  []models.Package
	payments PaymentStore
	now      func() time.Time
}

func NewPaymentService(catalog []models.Package, payments PaymentStore) *PaymentService {
	return &PaymentService{catalog: catalog, payments: payments, now: time.Now}
}

// Packages lists the catalog, optionally restricted to one kind.
func (s *PaymentService) Packages(kind forms.Kind) []models.Package {
	out := []models.Package{}
	for _, p := range s.catalog {
		if kind == "" || p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func (s *PaymentService) Package(id string) (models.Package, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return models.Package{}, false
}

// Pay records a confirmed payment for a package.
func (s *PaymentService) Pay(ctx context.Context, actor Actor, packageID string) (*models.Payment, models.Package, error) {
	pkg, ok := s.Package(packageID)
	if !ok {
		return nil, models.Package{}, fmt.Errorf("%w: unknown package %q", ErrNotFound, packageID)
	}
	p := &models.Payment{
		PaymentID: "pay_" + uuid.NewString(),
		PackageID: pkg.ID,
		Amount:    pkg.Price,
		Status:    models.PaymentPaid,
		UserID:    actor.UserID,
		PaidAt:    s.now().UTC(),
	}
	if err := s.payments.Insert(ctx, p); err != nil {
		return nil, models.Package{}, fmt.Errorf("insert payment: %w", err)
	}
	return p, pkg, nil
}
