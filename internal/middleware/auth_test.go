package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"angaza/internal/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(GetJWTSecret())
	require.NoError(t, err)
	return signed
}

func newGatedRouter(area access.Area) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/gated", RequireArea(area), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("userRole")})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/gated", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireArea_AllowsPermittedRole(t *testing.T) {
	router := newGatedRouter(access.AreaInventory)
	token := signToken(t, jwt.MapClaims{
		"sub":  "00000000-0000-0000-0000-000000000001",
		"role": access.RoleFieldOfficer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireArea_BlocksForbiddenRole(t *testing.T) {
	router := newGatedRouter(access.AreaAdmin)
	token := signToken(t, jwt.MapClaims{
		"sub":  "00000000-0000-0000-0000-000000000002",
		"role": access.RoleBoard,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// An unrecognized role is not an error: it falls back to the default policy,
// which only opens the overview area.
func TestRequireArea_UnknownRoleGetsDefaultPolicy(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "00000000-0000-0000-0000-000000000003",
		"role": "visiting consultant",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	w := doRequest(newGatedRouter(access.AreaOverview), signToken(t, claims))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(newGatedRouter(access.AreaInventory), signToken(t, claims))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// A token with no role claim at all is rejected outright; the default policy
// is for unrecognized roles, not for missing ones.
func TestRequireArea_MissingRoleClaimRejected(t *testing.T) {
	router := newGatedRouter(access.AreaOverview)
	token := signToken(t, jwt.MapClaims{
		"sub": "00000000-0000-0000-0000-000000000004",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireArea_RejectsBadTokens(t *testing.T) {
	router := newGatedRouter(access.AreaOverview)

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired := signToken(t, jwt.MapClaims{
		"sub":  "00000000-0000-0000-0000-000000000005",
		"role": access.RoleSystemAdmin,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	w = doRequest(router, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireArea_AcceptsCookieToken(t *testing.T) {
	router := newGatedRouter(access.AreaInventory)
	token := signToken(t, jwt.MapClaims{
		"sub":  "00000000-0000-0000-0000-000000000006",
		"role": access.RoleProgramManager,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/gated", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
