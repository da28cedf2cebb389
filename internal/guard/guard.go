// Package guard decides whether a stored session may render a page.
package guard

import (
	"context"
	"encoding/json"
	"strings"

	"oneasy-portal/internal/kvstore"
	"oneasy-portal/internal/viewmode"
)

const LoginPath = "/"

type Action int

const (
	Render Action = iota
	RedirectLogin
	RedirectHome
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

// Decision is the guard outcome. Location is set for redirects.
type Decision struct {
	Action   Action
	Location string
	Role     viewmode.Role
}

// Home is the landing page of a role.
func Home(role viewmode.Role) string {
	switch role {
	case viewmode.RoleAdmin:
		return "/admin/dashboard"
	case viewmode.RoleSuperadmin:
		return "/superadmin/dashboard"
	default:
		return "/dashboard"
	}
}

type storedUser struct {
	ID   string        `json:"id"`
	Role viewmode.Role `json:"role"`
}

// Check evaluates the stored credential against the allowed roles. A user
// record that is not valid JSON, or carries no known role, is cleared along
// with the token and treated as logged out.
func Check(ctx context.Context, store kvstore.Store, allowed []viewmode.Role) (Decision, error) {
	token, hasToken, err := store.Get(ctx, kvstore.KeyToken)
	if err != nil {
		return Decision{}, err
	}
	raw, hasUser, err := store.Get(ctx, kvstore.KeyUser)
	if err != nil {
		return Decision{}, err
	}
	if !hasToken || strings.TrimSpace(token) == "" || !hasUser {
		return Decision{Action: RedirectLogin, Location: LoginPath}, nil
	}

	var u storedUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil || !u.Role.Valid() {
		if err := kvstore.Clear(ctx, store, kvstore.KeyUser, kvstore.KeyToken); err != nil {
			return Decision{}, err
		}
		return Decision{Action: RedirectLogin, Location: LoginPath}, nil
	}

	if len(allowed) == 0 {
		return Decision{Action: Render, Role: u.Role}, nil
	}
	for _, r := range allowed {
		if r == u.Role {
			return Decision{Action: Render, Role: u.Role}, nil
		}
	}
	return Decision{Action: RedirectHome, Location: Home(u.Role), Role: u.Role}, nil
}

// Evaluate resolves path in the route table and checks it. Public and
// unknown paths always render.
func Evaluate(ctx context.Context, store kvstore.Store, path string) (Decision, error) {
	route, ok := Match(path)
	if !ok || route.Public {
		return Decision{Action: Render}, nil
	}
	return Check(ctx, store, route.Roles)
}
