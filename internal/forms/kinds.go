// Package forms describes the registration kinds the portal handles and the
// step-by-step field schema of each one. It is shared by the API (validation,
// ticket prefixes) and the client (draft grouping, step validation).
package forms

import (
	"fmt"
	"strings"
)

type Kind string

const (
	StartupIndia   Kind = "startup-india"
	GST            Kind = "gst"
	PrivateLimited Kind = "private-limited"
	Proprietorship Kind = "proprietorship"
)

// Kinds lists every registration kind in menu order.
var Kinds = []Kind{StartupIndia, GST, PrivateLimited, Proprietorship}

var prefixes = map[Kind]string{
	StartupIndia:   "SI",
	GST:            "GST",
	PrivateLimited: "PVT",
	Proprietorship: "PROP",
}

var titles = map[Kind]string{
	StartupIndia:   "Startup India Registration",
	GST:            "GST Registration",
	PrivateLimited: "Private Limited Company Registration",
	Proprietorship: "Proprietorship Registration",
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := prefixes[k]; !ok {
		return "", fmt.Errorf("unknown registration kind %q", s)
	}
	return k, nil
}

// Segment is the URL path segment used by the API for this kind.
func (k Kind) Segment() string { return string(k) }

// TicketPrefix is prepended to every ticket id issued for this kind.
func (k Kind) TicketPrefix() string { return prefixes[k] }

func (k Kind) Title() string { return titles[k] }

func (k Kind) String() string { return string(k) }

// OwnsTicket reports whether a ticket id carries this kind's prefix.
func (k Kind) OwnsTicket(ticketID string) bool {
	p := k.TicketPrefix()
	return p != "" && strings.HasPrefix(ticketID, p+"_")
}
