package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUpstreamStatus(t *testing.T) {
	cases := []struct {
		upstream int
		want     int
		typ      string
	}{
		{http.StatusBadRequest, http.StatusBadRequest, TypeBadRequest},
		{http.StatusUnauthorized, http.StatusUnauthorized, TypeUnauthorized},
		{http.StatusForbidden, http.StatusForbidden, TypeForbidden},
		{http.StatusNotFound, http.StatusNotFound, TypeNotFound},
		{http.StatusConflict, http.StatusConflict, TypeConflict},
		{http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, TypeBadRequest},
		{http.StatusInternalServerError, http.StatusBadGateway, TypeUpstream},
		{http.StatusServiceUnavailable, http.StatusBadGateway, TypeUpstream},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.upstream), func(t *testing.T) {
			p := FromUpstreamStatus(tc.upstream)
			assert.Equal(t, tc.want, p.Status)
			assert.Equal(t, tc.typ, p.Type)
			assert.Equal(t, tc.upstream, p.Extensions["upstreamStatus"])
		})
	}
}

func TestWithExtensionDoesNotShareTemplateMap(t *testing.T) {
	base := ErrNotFound.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)

	assert.Len(t, base.Extensions, 1)
	assert.Len(t, derived.Extensions, 2)
	assert.Nil(t, ErrNotFound.Extensions)
}

var errBoom = errors.New("boom")

func TestChainedResponderUsesFirstMatchingMapper(t *testing.T) {
	gin.SetMode(gin.TestMode)
	responder := NewChainedResponder("https://example.test",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errBoom) {
				return ErrServiceUnavailable.WithDetail("boom"), true
			}
			return ProblemDetail{}, false
		},
	)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	responder.RespondError(c, fmt.Errorf("load: %w", errBoom))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://example.test"+TypeServiceUnavailable, body.Type)
	assert.Equal(t, "boom", body.Detail)
	assert.Equal(t, "/api/admin/dashboard", body.Instance)
}

func TestChainedResponderFallsBackToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	NewChainedResponder("").RespondError(c, errBoom)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(errBoom))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(fmt.Errorf("wrap: %w", ErrNotFound)))
}
