package apiclient

import (
	"context"
	"io"
	"net/url"

	"oneasy-portal/dto"
	"oneasy-portal/internal/models"
)

func (c *Client) AddUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	var u models.User
	if err := c.Post(ctx, "/admin/users", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Clients(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.Get(ctx, "/admin/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.Get(ctx, "/superadmin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Organizations(ctx context.Context) ([]models.Organization, error) {
	var out []models.Organization
	if err := c.Get(ctx, "/admin/organizations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrganization(ctx context.Context, req dto.OrganizationRequest) (*models.Organization, error) {
	var out models.Organization
	if err := c.Post(ctx, "/admin/organizations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Directors(ctx context.Context) ([]models.Director, error) {
	var out []models.Director
	if err := c.Get(ctx, "/admin/directors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDirector(ctx context.Context, req dto.DirectorRequest) (*models.Director, error) {
	var out models.Director
	if err := c.Post(ctx, "/admin/directors", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notices returns the caller's dashboard notices.
func (c *Client) Notices(ctx context.Context) ([]models.Notice, error) {
	var out []models.Notice
	if err := c.Get(ctx, "/notices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AllNotices(ctx context.Context) ([]models.Notice, error) {
	var out []models.Notice
	if err := c.Get(ctx, "/admin/notices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateNotice(ctx context.Context, req dto.NoticeRequest) (*models.Notice, error) {
	var out models.Notice
	if err := c.Post(ctx, "/admin/notices", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNotice(ctx context.Context, id string, req dto.NoticeRequest) (*models.Notice, error) {
	var out models.Notice
	if err := c.Put(ctx, "/admin/notices/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNotice(ctx context.Context, id string) error {
	return c.Delete(ctx, "/admin/notices/"+url.PathEscape(id), nil)
}

// UploadDocument stores a file and returns its doc:// reference.
func (c *Client) UploadDocument(ctx context.Context, name string, r io.Reader) (string, error) {
	body, contentType, err := multipartFile("file", name, r)
	if err != nil {
		return "", err
	}
	var out dto.DocumentUploadDTO
	if err := c.do(ctx, "POST", "/documents", body, contentType, &out); err != nil {
		return "", err
	}
	return out.FileURL, nil
}
