package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/auth"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/logging"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/repository"
	"oneasy-portal/internal/viewmode"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type AuthService struct {
	users  UserStore
	tokens *auth.TokenIssuer
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens *auth.TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: logging.OrNop(log), now: time.Now}
}

// Register is client self-signup.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	return s.createUser(ctx, dto.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     string(viewmode.RoleClient),
	}, bson.NilObjectID)
}

// CreateUser is the admin "add user" operation. Admins create clients;
// superadmins may also create admins and superadmins.
func (s *AuthService) CreateUser(ctx context.Context, actor Actor, req dto.CreateUserRequest) (*models.User, error) {
	role := viewmode.Role(req.Role)
	if role == "" {
		role = viewmode.RoleClient
		req.Role = string(role)
	}
	switch {
	case !actor.IsStaff():
		return nil, ErrForbidden
	case role.IsStaff() && actor.Role != viewmode.RoleSuperadmin:
		return nil, ErrForbidden
	}
	return s.createUser(ctx, req, actor.UserID)
}

func (s *AuthService) createUser(ctx context.Context, req dto.CreateUserRequest, by bson.ObjectID) (*models.User, error) {
	if err := ValidateNewUser(req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.Phone)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByPhone(ctx, phone); err == nil {
		return nil, fmt.Errorf("%w: phone already registered", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	u := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        phone,
		Role:         viewmode.Role(req.Role),
		PasswordHash: hash,
		CreatedBy:    by,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	s.log.Info("user created", zap.String("user_id", u.ID.Hex()), zap.String("role", string(u.Role)))
	return u, nil
}

// ValidateNewUser runs the synchronous checks of the add-user form.
func ValidateNewUser(req dto.CreateUserRequest) error {
	verr := &forms.ValidationError{}
	if !forms.ValidPhone(req.Phone) {
		verr.Add("", "phone", "must be a 10 digit mobile number")
	}
	if !forms.ValidEmail(req.Email) {
		verr.Add("", "email", "must be a valid email address")
	}
	if !forms.ValidPassword(req.Password) {
		verr.Add("", "password", fmt.Sprintf("must be at least %d characters", forms.MinPasswordLength))
	}
	if req.Role != "" && !viewmode.Role(req.Role).Valid() {
		verr.Add("", "role", "must be client, admin or superadmin")
	}
	return verr.Err()
}

// Login accepts an email address or phone number and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	id := strings.TrimSpace(req.Identifier)
	var (
		u   *models.User
		err error
	)
	if strings.Contains(id, "@") {
		u, err = s.users.FindByEmail(ctx, normalizeEmail(id))
	} else {
		u, err = s.users.FindByPhone(ctx, id)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *u}, nil
}

func (s *AuthService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// Clients lists every client account. Filtering happens in the console.
func (s *AuthService) Clients(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, viewmode.RoleClient)
}

func (s *AuthService) Users(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, "")
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
