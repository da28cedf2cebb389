package guard

import (
	"net/url"
	"strings"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/viewmode"
)

// Route is one entry of the page table. A trailing "/*" matches the prefix
// and everything below it.
type Route struct {
	Pattern string
	Page    string
	Public  bool
	Roles   []viewmode.Role
}

var (
	clientOnly = []viewmode.Role{viewmode.RoleClient}
	anyStaff   = []viewmode.Role{viewmode.RoleAdmin, viewmode.RoleSuperadmin}
	superOnly  = []viewmode.Role{viewmode.RoleSuperadmin}
	anyone     = []viewmode.Role{viewmode.RoleClient, viewmode.RoleAdmin, viewmode.RoleSuperadmin}
)

// Routes is the page table, most specific first.
var Routes = buildRoutes()

func buildRoutes() []Route {
	rs := []Route{
		{Pattern: "/", Page: "login", Public: true},
		{Pattern: "/signup", Page: "signup", Public: true},
		{Pattern: "/packages", Page: "packages", Public: true},
		{Pattern: "/dashboard", Page: "client-dashboard", Roles: clientOnly},
		{Pattern: "/payment", Page: "payment", Roles: clientOnly},
		{Pattern: "/documents", Page: "document-vault", Roles: clientOnly},
		{Pattern: "/admin/dashboard", Page: "admin-dashboard", Roles: anyStaff},
		{Pattern: "/admin/*", Page: "admin", Roles: anyStaff},
		{Pattern: "/superadmin/dashboard", Page: "superadmin-dashboard", Roles: superOnly},
		{Pattern: "/superadmin/*", Page: "superadmin", Roles: superOnly},
	}
	// staff open registration forms with ?admin=true&clientId=...
	for _, k := range forms.Kinds {
		rs = append(rs, Route{Pattern: "/register/" + k.Segment(), Page: "form-" + k.Segment(), Roles: anyone})
	}
	return rs
}

// Match finds the route of path. Query strings and trailing slashes are ignored.
func Match(path string) (Route, bool) {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	for _, r := range Routes {
		if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return r, true
			}
			continue
		}
		if r.Pattern == path {
			return r, true
		}
	}
	return Route{}, false
}
