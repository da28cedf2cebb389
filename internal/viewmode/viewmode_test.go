package viewmode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsDisabledTruthTable(t *testing.T) {
	for _, team := range []bool{false, true} {
		for _, client := range []bool{false, true} {
			for _, admin := range []bool{false, true} {
				name := fmt.Sprintf("team=%v client=%v admin=%v", team, client, admin)
				t.Run(name, func(t *testing.T) {
					want := (team && !admin) || (client && admin)
					m := Resolve(Flags{TeamFill: team, ClientFillRequested: client}, admin)
					assert.Equal(t, want, m.FieldsDisabled(), "mode %s", m)
				})
			}
		}
	}
}

func TestResolveModes(t *testing.T) {
	assert.Equal(t, SelfService, Resolve(Flags{}, false))
	assert.Equal(t, SelfService, Resolve(Flags{ClientFillRequested: true}, false))
	assert.Equal(t, AdminOnBehalf, Resolve(Flags{TeamFill: true}, true))
	assert.Equal(t, TeamFillActive, Resolve(Flags{TeamFill: true, ClientFillRequested: true}, false))
	assert.Equal(t, ClientFillRequested, Resolve(Flags{ClientFillRequested: true}, true))
}

func TestAskClientToFill(t *testing.T) {
	flags := Flags{ClientFillRequested: true}

	admin := Resolve(flags, AdminFilling(RoleAdmin))
	client := Resolve(flags, AdminFilling(RoleClient))

	assert.True(t, admin.FieldsDisabled())
	assert.False(t, client.FieldsDisabled())
}

func TestOnlyStaffFillForOthers(t *testing.T) {
	assert.True(t, AdminFilling(RoleAdmin))
	assert.True(t, AdminFilling(RoleSuperadmin))
	assert.False(t, AdminFilling(RoleClient))
	assert.False(t, AdminFilling(Role("")))

	// a client never lands in the staff view, whatever the flags say
	for _, f := range []Flags{{}, {TeamFill: true}, {ClientFillRequested: true}, {TeamFill: true, ClientFillRequested: true}} {
		assert.NotEqual(t, AdminOnBehalf, Resolve(f, AdminFilling(RoleClient)), "%+v", f)
	}
}

func TestRoles(t *testing.T) {
	assert.True(t, RoleSuperadmin.IsStaff())
	assert.False(t, RoleClient.IsStaff())
	assert.False(t, Role("guest").Valid())
	assert.Equal(t, "team-fill-active", TeamFillActive.String())
}
