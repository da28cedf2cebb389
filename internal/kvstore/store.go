// Package kvstore holds the client's small persisted state: credentials, the
// package/payment selection made before a form, draft ticket bookkeeping and
// team-fill flags. Values are opaque strings; JSON helpers sit on top.
//
// The store is a cache, never a source of truth. A value that fails to decode
// is cleared and reported as absent.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

const (
	KeyUser            = "user"
	KeyToken           = "token"
	KeySelectedPackage = "selectedPackage"
	KeyPaymentDetails  = "paymentDetails"
	KeyEditingTicketID = "editingTicketId"
	KeyDraftTicketID   = "draftTicketId"
	KeyTeamFill        = "oneasyTeamFill"
)

// TeamFillKey is the per-ticket variant of KeyTeamFill.
func TeamFillKey(ticketID string) string { return KeyTeamFill + "_" + ticketID }

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes key into v. Corrupt JSON clears the key and reads as absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, s.Delete(ctx, key)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(b))
}

// Clear deletes every listed key, returning the first error.
func Clear(ctx context.Context, s Store, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if err := s.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Memory is an in-process Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns a snapshot of the stored keys.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	return out
}
