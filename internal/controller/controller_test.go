package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{apperr.ErrInsufficientRights, http.StatusForbidden},
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrConflict, http.StatusConflict},
		{apperr.ErrExpired, http.StatusGone},
		{apperr.ErrInvalidInput, http.StatusBadRequest},
		{apperr.ErrInvalidOperation, http.StatusUnprocessableEntity},
		{apperr.ErrPersistence, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", apperr.ErrExpired), http.StatusGone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestServiceEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/status", Status)
	r.GET("/server", Server)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, "OK", msg.Message)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/server", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var host dto.HostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &host))
	assert.NotEmpty(t, host.Host)
	assert.NotEmpty(t, host.HostFull)
}
