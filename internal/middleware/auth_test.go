package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive/task-management-api/internal/token"
)

const testSecret = "middleware-secret"

func protectedRouter(designations ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{RequireAuth(testSecret)}
	if len(designations) > 0 {
		chain = append(chain, RequireDesignation(designations...))
	}
	chain = append(chain, func(c *gin.Context) {
		id, _ := GetUserID(c)
		designation, _ := GetDesignation(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "designation": designation})
	})
	r.GET("/protected", chain...)
	return r
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := protectedRouter()
	signed, _, err := token.Sign(testSecret, 7, "Manager", time.Now())
	require.NoError(t, err)

	w := get(r, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	assert.Contains(t, w.Body.String(), `"designation":"Manager"`)

	// A bare token without the scheme also works.
	w = get(r, signed)
	assert.Equal(t, http.StatusOK, w.Code)

	// So does the legacy "token:" scheme some clients still send.
	w = get(r, "token: "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
}

func TestRequireAuthRejections(t *testing.T) {
	r := protectedRouter()

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	wrong, _, err := token.Sign("other-secret", 7, "Manager", time.Now())
	require.NoError(t, err)
	w = get(r, "Bearer "+wrong)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired, _, err := token.Sign(testSecret, 7, "Manager", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	w = get(r, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireDesignation(t *testing.T) {
	r := protectedRouter("Admin", "Manager")

	managerToken, _, err := token.Sign(testSecret, 1, "Manager", time.Now())
	require.NoError(t, err)
	w := get(r, "Bearer "+managerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	memberToken, _, err := token.Sign(testSecret, 2, "Member", time.Now())
	require.NoError(t, err)
	w = get(r, "Bearer "+memberToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"You don't have permission to perform this action"}`, w.Body.String())
}
