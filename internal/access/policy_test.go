package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allAreas = []Area{
	AreaOverview, AreaBeneficiaries, AreaInventory, AreaDistributions,
	AreaFinance, AreaGrants, AreaProjects, AreaDepartments, AreaStaff,
	AreaReports, AreaAdmin,
}

// The full role/area matrix, pinned as data so a policy edit shows up as an
// explicit test diff.
var expectedMatrix = map[string]map[Area]bool{
	RoleSystemAdmin: {
		AreaOverview: true, AreaBeneficiaries: true, AreaInventory: true,
		AreaDistributions: true, AreaFinance: true, AreaGrants: true,
		AreaProjects: true, AreaDepartments: true, AreaStaff: true,
		AreaReports: true, AreaAdmin: true,
	},
	RoleFinanceLead: {
		AreaOverview: true, AreaFinance: true, AreaGrants: true,
		AreaProjects: true, AreaReports: true,
	},
	RoleProgramManager: {
		AreaOverview: true, AreaBeneficiaries: true, AreaInventory: true,
		AreaDistributions: true, AreaProjects: true, AreaReports: true,
	},
	RoleFieldOfficer: {
		AreaOverview: true, AreaBeneficiaries: true, AreaInventory: true,
		AreaDistributions: true,
	},
	RoleHRLead: {
		AreaOverview: true, AreaDepartments: true, AreaStaff: true,
		AreaReports: true,
	},
	RoleBoard: {
		AreaOverview: true, AreaFinance: true, AreaGrants: true,
		AreaProjects: true, AreaReports: true,
	},
	RoleDefault: {
		AreaOverview: true,
	},
}

func TestCanAccessArea_FullMatrix(t *testing.T) {
	for role, allowed := range expectedMatrix {
		for _, area := range allAreas {
			got := CanAccessArea(role, area)
			assert.Equalf(t, allowed[area], got, "role %q area %q", role, area)
		}
	}
}

func TestAllowedAreas_UnknownRoleFallsBackToDefault(t *testing.T) {
	assert.Equal(t, AllowedAreas(RoleDefault), AllowedAreas("intern"))
	assert.Equal(t, AllowedAreas(RoleDefault), AllowedAreas(""))
	assert.Equal(t, []Area{AreaOverview}, AllowedAreas("no such role"))
}

func TestAllowedAreas_CaseAndWhitespaceInsensitive(t *testing.T) {
	assert.Equal(t, AllowedAreas(RoleBoard), AllowedAreas("Board"))
	assert.Equal(t, AllowedAreas(RoleSystemAdmin), AllowedAreas("  System Admin "))
}

func TestAllowedAreas_ReturnsCopy(t *testing.T) {
	first := AllowedAreas(RoleFieldOfficer)
	first[0] = AreaAdmin
	assert.Equal(t, AreaOverview, AllowedAreas(RoleFieldOfficer)[0])
}

func TestAllowedAreas_Deterministic(t *testing.T) {
	for _, role := range append(Roles(), "unknown") {
		base := AllowedAreas(role)
		for i := 0; i < 5; i++ {
			assert.Equal(t, base, AllowedAreas(role))
		}
	}
}

func TestRouteArea(t *testing.T) {
	cases := map[string]Area{
		"/":                  AreaOverview,
		"/dashboard":         AreaOverview,
		"/login":             AreaOverview,
		"/unauthorized":      AreaOverview,
		"/distributions":     AreaDistributions,
		"/distributions/123": AreaDistributions,
		"/resources":         AreaInventory,
		"/categories":        AreaInventory,
		"/stats":             AreaReports,
		"/stats/categories":  AreaReports,
		"/users":             AreaAdmin,
		"/audit-logs":        AreaAdmin,
		"/never-registered":  AreaOverview,
	}
	for route, want := range cases {
		assert.Equalf(t, want, RouteArea(route), "route %q", route)
	}
}

// Every role, including the fallback, must be able to reach the landing,
// login and unauthorized pages; otherwise a denied user has nowhere to go.
func TestCanAccessRoute_NeutralRoutesOpenToEveryone(t *testing.T) {
	roles := append(Roles(), RoleDefault, "some made-up role")
	for _, role := range roles {
		for _, route := range []string{"/", "/login", "/unauthorized", "/dashboard"} {
			assert.Truef(t, CanAccessRoute(role, route), "role %q route %q", role, route)
		}
	}
}

func TestCanAccessRoute_BoardCannotReachAdmin(t *testing.T) {
	assert.False(t, CanAccessRoute(RoleBoard, "/admin"))
	assert.False(t, CanAccessRoute(RoleBoard, "/users"))
	assert.False(t, CanAccessRoute(RoleBoard, "/audit-logs"))
	assert.True(t, CanAccessRoute(RoleBoard, "/grants"))
}

func TestIsKnownRole(t *testing.T) {
	for _, role := range Roles() {
		assert.Truef(t, IsKnownRole(role), "role %q", role)
	}
	assert.False(t, IsKnownRole("default"), "the fallback entry is not an assignable role")
	assert.False(t, IsKnownRole("intern"))
	assert.True(t, IsKnownRole("BOARD"))
}
