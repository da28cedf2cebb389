package listfilter

import (
	"testing"

	"oneasy-portal/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type client struct {
	Name  string
	Email string
	Role  string
}

var clients = []client{
	{"Asha Rao", "asha@shop.in", "client"},
	{"Ravi Kumar", "ravi@acme.in", "admin"},
	{"Meera Shah", "meera@RAO.in", "client"},
	{"Vikram", "vik@x.in", "superadmin"},
}

func name(c client) string  { return c.Name }
func email(c client) string { return c.Email }
func role(c client) string  { return c.Role }

func names(cs []client) []string {
	out := []string{}
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestFilterPreservesOrder(t *testing.T) {
	tests := []struct {
		name  string
		preds []Predicate[client]
		want  []string
	}{
		{"no predicates", nil, []string{"Asha Rao", "Ravi Kumar", "Meera Shah", "Vikram"}},
		{"role", []Predicate[client]{Equals("client", role)}, []string{"Asha Rao", "Meera Shah"}},
		{"all roles", []Predicate[client]{Equals("", role)}, []string{"Asha Rao", "Ravi Kumar", "Meera Shah", "Vikram"}},
		{"search and role", []Predicate[client]{Contains(" rao ", name, email), Equals("client", role)}, []string{"Asha Rao", "Meera Shah"}},
		{"no match", []Predicate[client]{Contains("zzz", name)}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(clients, tt.preds...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	assert.Len(t, Search(clients, "", name), 4)
	assert.Equal(t, []string{"Ravi Kumar"}, names(Search(clients, "ACME", name, email)))
}

func TestSlice(t *testing.T) {
	assert.Equal(t, []string{"Ravi Kumar", "Meera Shah"}, names(Slice(clients, 1, 2)))
	assert.Equal(t, []string{"Meera Shah", "Vikram"}, names(Slice(clients, 2, 10)))
	assert.Len(t, Slice(clients, 0, 0), 4)
	assert.Empty(t, Slice(clients, 9, 2))
	assert.Len(t, Slice(clients, -3, 1), 1)
}

func TestGroupBy(t *testing.T) {
	keys, groups := GroupBy(clients, role)
	assert.Equal(t, []string{"client", "admin", "superadmin"}, keys)
	assert.Equal(t, []string{"Asha Rao", "Meera Shah"}, names(groups["client"]))
}

func TestJoinDirectors(t *testing.T) {
	orgs := []models.Organization{{UserID: "u1", Name: "Acme"}, {UserID: "u2", Name: "Shop"}}
	directors := []models.Director{
		{OrganizationUserID: "u1", Name: "Ravi"},
		{OrganizationUserID: "u9", Name: "Ghost"},
		{OrganizationUserID: "u1", Name: "Asha"},
	}
	joined, orphans := JoinDirectors(orgs, directors)
	assert.Len(t, joined, 2)
	assert.Equal(t, "Ravi", joined[0].Directors[0].Name)
	assert.Equal(t, "Asha", joined[0].Directors[1].Name)
	assert.Empty(t, joined[1].Directors)
	assert.NotNil(t, joined[1].Directors)
	assert.Len(t, orphans, 1)
	assert.Equal(t, "Ghost", orphans[0].Name)
}
