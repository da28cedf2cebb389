// Package console holds the state behind the admin console screens. The
// types are safe for concurrent use and talk to the portal through the
// apiclient package.
package console

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"
)

const (
	DefaultMessageTTL = 5000 * time.Millisecond
	UserAddedMessage  = "User added successfully"
)

type UserCreator interface {
	AddUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
}

// AddUserForm is the "add user" screen. Validation runs locally; the
// request is only sent once every field passes.
type AddUserForm struct {
	api UserCreator
	ttl time.Duration

	mu      sync.Mutex
	values  dto.CreateUserRequest
	message string
	failed  bool
	seq     uint64
	timer   *time.Timer
}

// NewAddUserForm returns an empty form. A ttl of zero uses DefaultMessageTTL.
func NewAddUserForm(api UserCreator, ttl time.Duration) *AddUserForm {
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	return &AddUserForm{api: api, ttl: ttl}
}

// Set assigns one input by its JSON name.
func (f *AddUserForm) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case "name":
		f.values.Name = value
	case "email":
		f.values.Email = value
	case "phone":
		f.values.Phone = value
	case "password":
		f.values.Password = value
	case "role":
		f.values.Role = value
	default:
		return errors.New("console: unknown field " + field)
	}
	return nil
}

func (f *AddUserForm) Values() dto.CreateUserRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Validate checks the inputs without a network round trip.
func (f *AddUserForm) Validate() error {
	return validateUser(f.Values())
}

func validateUser(req dto.CreateUserRequest) error {
	verr := &forms.ValidationError{}
	if !forms.ValidPhone(req.Phone) {
		verr.Add("", "phone", "must be a 10 digit mobile number")
	}
	if !forms.ValidEmail(req.Email) {
		verr.Add("", "email", "must be a valid email address")
	}
	if !forms.ValidPassword(req.Password) {
		verr.Add("", "password", "must be at least 6 characters")
	}
	return verr.Err()
}

// Submit validates and creates the user. On success the form is cleared and
// a success message shows until the message TTL elapses. Validation and API
// errors are shown as the message and leave the inputs untouched.
func (f *AddUserForm) Submit(ctx context.Context) (*models.User, error) {
	req := f.Values()
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validateUser(req); err != nil {
		f.show(err.Error(), true)
		return nil, err
	}
	u, err := f.api.AddUser(ctx, req)
	if err != nil {
		f.show(err.Error(), true)
		return nil, err
	}
	f.mu.Lock()
	f.values = dto.CreateUserRequest{}
	f.mu.Unlock()
	f.show(UserAddedMessage, false)
	return u, nil
}

// Message returns the current banner and whether it reports a failure.
func (f *AddUserForm) Message() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message, f.failed
}

// Dismiss clears the banner.
func (f *AddUserForm) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearLocked()
}

// Close stops the pending auto-clear timer.
func (f *AddUserForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *AddUserForm) show(msg string, failed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearLocked()
	f.message, f.failed = msg, failed
	if failed {
		return
	}
	seq := f.seq
	f.timer = time.AfterFunc(f.ttl, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		// a newer message replaced this one
		if f.seq == seq {
			f.clearLocked()
		}
	})
}

func (f *AddUserForm) clearLocked() {
	f.seq++
	f.message, f.failed = "", false
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
