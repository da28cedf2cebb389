package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/kvstore"
	"oneasy-portal/internal/models"
)

func (c *Client) Packages(ctx context.Context, kind forms.Kind) ([]models.Package, error) {
	var q url.Values
	if kind != "" {
		q = url.Values{"kind": {kind.Segment()}}
	}
	var out []models.Package
	if err := c.Get(ctx, "/packages", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SelectPackage remembers the package chosen before payment.
func (c *Client) SelectPackage(ctx context.Context, pkg models.Package) error {
	return kvstore.SetJSON(ctx, c.store, kvstore.KeySelectedPackage, pkg)
}

// Pay confirms the selected package and stores the payment details a draft
// needs before it can be opened.
func (c *Client) Pay(ctx context.Context, pkg models.Package) (*models.Payment, error) {
	var pay models.Payment
	if err := c.Post(ctx, "/payments", dto.PaymentRequest{PackageID: pkg.ID}, &pay); err != nil {
		return nil, err
	}
	if err := c.SelectPackage(ctx, pkg); err != nil {
		return nil, err
	}
	if err := kvstore.SetJSON(ctx, c.store, kvstore.KeyPaymentDetails, pay); err != nil {
		return nil, err
	}
	return &pay, nil
}

func multipartFile(field, name string, r io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
