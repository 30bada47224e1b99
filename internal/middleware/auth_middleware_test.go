package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/internal/utils"
)

const testSecret = "test-secret"

func wsFeedRequest(t *testing.T, target string, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ws", WSAuthRequired(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	req := httptest.NewRequest("GET", target, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWSAuthAcceptsTokenQueryParam(t *testing.T) {
	pair, err := utils.GenerateTokenPair("user-7", "viewer", "v@example.com", testSecret)
	require.NoError(t, err)

	w := wsFeedRequest(t, "/ws?token="+pair.AccessToken, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-7", w.Body.String())
}

func TestWSAuthAcceptsBearerHeader(t *testing.T) {
	pair, err := utils.GenerateTokenPair("user-8", "manager", "m@example.com", testSecret)
	require.NoError(t, err)

	w := wsFeedRequest(t, "/ws", "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-8", w.Body.String())
}

func TestWSAuthRejectsMissingToken(t *testing.T) {
	w := wsFeedRequest(t, "/ws", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWSAuthRejectsInvalidQueryToken(t *testing.T) {
	w := wsFeedRequest(t, "/ws?token=garbage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
