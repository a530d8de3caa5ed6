package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, Limit: 20, Offset: 0}},
		{"explicit", "page=3&limit=15", Params{Page: 3, Limit: 15, Offset: 30}},
		{"zero page", "page=0", Params{Page: 1, Limit: 20, Offset: 0}},
		{"negative page", "page=-4", Params{Page: 1, Limit: 20, Offset: 0}},
		{"zero limit", "limit=0", Params{Page: 1, Limit: 20, Offset: 0}},
		{"limit above cap", "limit=1000", Params{Page: 1, Limit: 100, Offset: 0}},
		{"garbage", "page=abc&limit=xyz", Params{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(ctxWithQuery(t, tc.query)))
		})
	}
}
