package apiclient

import (
	"context"
	"errors"
	"net/http"

	"oneasy-portal/dto"
	"oneasy-portal/internal/kvstore"
	"oneasy-portal/internal/models"
)

// Login authenticates and persists the token and user for later calls.
func (c *Client) Login(ctx context.Context, identifier, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.Post(ctx, "/login", dto.LoginRequest{Identifier: identifier, Password: password}, &resp); err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, kvstore.KeyToken, resp.Token); err != nil {
		return nil, err
	}
	if err := kvstore.SetJSON(ctx, c.store, kvstore.KeyUser, resp.User); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout forgets the session and any in-progress purchase or draft.
func (c *Client) Logout(ctx context.Context) error {
	return kvstore.Clear(ctx, c.store,
		kvstore.KeyToken, kvstore.KeyUser,
		kvstore.KeySelectedPackage, kvstore.KeyPaymentDetails,
		kvstore.KeyEditingTicketID, kvstore.KeyDraftTicketID,
	)
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	var u models.User
	if err := c.Post(ctx, "/register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.Get(ctx, "/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CurrentUser returns the cached user without a network call.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, bool, error) {
	var u models.User
	ok, err := kvstore.GetJSON(ctx, c.store, kvstore.KeyUser, &u)
	if err != nil || !ok {
		return nil, false, err
	}
	return &u, true, nil
}

// IsUnauthorized reports a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
