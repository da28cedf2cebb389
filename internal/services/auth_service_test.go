package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/auth"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/testutil"
	"oneasy-portal/internal/viewmode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newAuthService() (*AuthService, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(testutil.NewUsers(), tokens, nil), tokens
}

func TestCreateUserByAdmin(t *testing.T) {
	svc, tokens := newAuthService()
	ctx := context.Background()
	admin := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleAdmin}

	u, err := svc.CreateUser(ctx, admin, dto.CreateUserRequest{
		Name:     "Asha",
		Phone:    "9123456789",
		Email:    "a@b.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, viewmode.RoleClient, u.Role)
	assert.Equal(t, admin.UserID, u.CreatedBy)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	resp, err := svc.Login(ctx, dto.LoginRequest{Identifier: "9123456789", Password: "secret1"})
	require.NoError(t, err)
	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UID)
	assert.Equal(t, viewmode.RoleClient, claims.Role)

	_, err = svc.Login(ctx, dto.LoginRequest{Identifier: " A@B.com ", Password: "secret1"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, dto.LoginRequest{Identifier: "a@b.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Identifier: "nobody@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	svc, _ := newAuthService()
	admin := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleAdmin}

	_, err := svc.CreateUser(context.Background(), admin, dto.CreateUserRequest{
		Phone:    "12345",
		Email:    "not-an-email",
		Password: "abc",
	})
	var verr *forms.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.Equal(t, map[string]bool{"phone": true, "email": true, "password": true}, fields)
}

func TestCreateUserRoleRules(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	req := func(phone, email, role string) dto.CreateUserRequest {
		return dto.CreateUserRequest{Name: "x", Phone: phone, Email: email, Password: "secret1", Role: role}
	}

	client := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleClient}
	_, err := svc.CreateUser(ctx, client, req("9000000001", "c@x.com", ""))
	assert.ErrorIs(t, err, ErrForbidden)

	admin := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleAdmin}
	_, err = svc.CreateUser(ctx, admin, req("9000000002", "d@x.com", "admin"))
	assert.ErrorIs(t, err, ErrForbidden)

	super := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleSuperadmin}
	u, err := svc.CreateUser(ctx, super, req("9000000003", "e@x.com", "admin"))
	require.NoError(t, err)
	assert.Equal(t, viewmode.RoleAdmin, u.Role)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@b.com", Phone: "9123456789", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "B", Email: "A@b.com", Phone: "9876543210", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "B", Email: "z@b.com", Phone: "9123456789", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)

	clients, err := svc.Clients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}
