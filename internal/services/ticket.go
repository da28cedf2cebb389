package services

import (
	"strings"
	"time"

	"oneasy-portal/internal/forms"

	"github.com/google/uuid"
)

// NewTicketID issues <PREFIX>_<YYYYMMDD>_<8 hex>, e.g. GST_20261016_9F3A1B2C.
func NewTicketID(kind forms.Kind, now time.Time) string {
	id := uuid.New()
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return kind.TicketPrefix() + "_" + now.UTC().Format("20060102") + "_" + suffix
}
