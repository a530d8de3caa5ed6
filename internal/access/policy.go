// Package access resolves which feature areas of the dashboard a role may
// use. The matrix is deliberately data, not code: rolePolicies is the single
// reviewable source of truth for who sees what, and the tests pin every
// role/area combination as a fixed fact.
package access

import "strings"

// Area is a named section of the dashboard's functionality ("tab")
type Area string

const (
	AreaOverview      Area = "overview"
	AreaBeneficiaries Area = "beneficiaries"
	AreaInventory     Area = "inventory"
	AreaDistributions Area = "distributions"
	AreaFinance       Area = "finance"
	AreaGrants        Area = "grants"
	AreaProjects      Area = "projects"
	AreaDepartments   Area = "departments"
	AreaStaff         Area = "staff"
	AreaReports       Area = "reports"
	AreaAdmin         Area = "admin"
)

// Role identifiers. Lookup is case-insensitive; RoleDefault is the
// distinguished fallback entry for unrecognized roles.
const (
	RoleSystemAdmin    = "system admin"
	RoleFinanceLead    = "finance lead"
	RoleProgramManager = "program manager"
	RoleFieldOfficer   = "field officer"
	RoleHRLead         = "hr lead"
	RoleBoard          = "board"
	RoleDefault        = "default"
)

// rolePolicies maps each role to the areas it may use. Every set includes
// overview so that the landing, login and unauthorized pages stay reachable.
// Unrecognized roles fall back to the "default" entry rather than being
// denied outright; the auth middleware separately rejects principals that
// carry no role claim at all.
var rolePolicies = map[string][]Area{
	RoleSystemAdmin: {
		AreaOverview, AreaBeneficiaries, AreaInventory, AreaDistributions,
		AreaFinance, AreaGrants, AreaProjects, AreaDepartments, AreaStaff,
		AreaReports, AreaAdmin,
	},
	RoleFinanceLead: {
		AreaOverview, AreaFinance, AreaGrants, AreaProjects, AreaReports,
	},
	RoleProgramManager: {
		AreaOverview, AreaBeneficiaries, AreaInventory, AreaDistributions,
		AreaProjects, AreaReports,
	},
	RoleFieldOfficer: {
		AreaOverview, AreaBeneficiaries, AreaInventory, AreaDistributions,
	},
	RoleHRLead: {
		AreaOverview, AreaDepartments, AreaStaff, AreaReports,
	},
	RoleBoard: {
		AreaOverview, AreaFinance, AreaGrants, AreaProjects, AreaReports,
	},
	RoleDefault: {
		AreaOverview,
	},
}

// routeAreas maps route paths (and first-segment prefixes) to areas. Routes
// not present here default to overview.
var routeAreas = map[string]Area{
	"/":              AreaOverview,
	"/dashboard":     AreaOverview,
	"/unauthorized":  AreaOverview,
	"/login":         AreaOverview,
	"/beneficiaries": AreaBeneficiaries,
	"/resources":     AreaInventory,
	"/inventory":     AreaInventory,
	"/categories":    AreaInventory,
	"/distributions": AreaDistributions,
	"/donations":     AreaFinance,
	"/finance":       AreaFinance,
	"/partners":      AreaFinance,
	"/grants":        AreaGrants,
	"/projects":      AreaProjects,
	"/programs":      AreaProjects,
	"/departments":   AreaDepartments,
	"/staff":         AreaStaff,
	"/reports":       AreaReports,
	"/stats":         AreaReports,
	"/admin":         AreaAdmin,
	"/users":         AreaAdmin,
	"/audit-logs":    AreaAdmin,
}

// AllowedAreas returns the set of areas a role may use. Lookup never fails:
// an unrecognized role yields the default set.
func AllowedAreas(role string) []Area {
	areas, ok := rolePolicies[strings.ToLower(strings.TrimSpace(role))]
	if !ok {
		areas = rolePolicies[RoleDefault]
	}
	out := make([]Area, len(areas))
	copy(out, areas)
	return out
}

// CanAccessArea reports whether the role may use the given area
func CanAccessArea(role string, area Area) bool {
	for _, a := range AllowedAreas(role) {
		if a == area {
			return true
		}
	}
	return false
}

// RouteArea resolves a route path to its area. Exact matches win; otherwise
// the first path segment is tried as a prefix; unknown routes map to overview.
func RouteArea(route string) Area {
	if area, ok := routeAreas[route]; ok {
		return area
	}
	if seg := firstSegment(route); seg != "" {
		if area, ok := routeAreas["/"+seg]; ok {
			return area
		}
	}
	return AreaOverview
}

// CanAccessRoute reports whether the role may open the given route path
func CanAccessRoute(role string, route string) bool {
	return CanAccessArea(role, RouteArea(route))
}

// Roles returns the known role identifiers, excluding the default entry
func Roles() []string {
	return []string{
		RoleSystemAdmin, RoleFinanceLead, RoleProgramManager,
		RoleFieldOfficer, RoleHRLead, RoleBoard,
	}
}

// IsKnownRole reports whether the role has an explicit policy entry
func IsKnownRole(role string) bool {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == RoleDefault {
		return false
	}
	_, ok := rolePolicies[normalized]
	return ok
}

func firstSegment(route string) string {
	trimmed := strings.TrimPrefix(route, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
