package controllers

import (
	"aurora/internal/models"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{models.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{models.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{fmt.Errorf("%w: maria", models.ErrDuplicateUser), http.StatusConflict, "duplicate"},
		{fmt.Errorf("%w: max 3", models.ErrLimitExceeded), http.StatusConflict, "limit_exceeded"},
		{fmt.Errorf("%w: lat", models.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{errors.New("disk full"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		status, code := errorStatus(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}

func TestDecodeBody(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	require.NoError(t, decodeBody(httptest.NewRecorder(), r, &dst))
	assert.Equal(t, "Ana", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("  \n"))
	assert.NoError(t, decodeBody(httptest.NewRecorder(), r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.ErrorIs(t, decodeBody(httptest.NewRecorder(), r, &dst), models.ErrInvalidInput)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("a", maxRequestBodySize)+`"}`))
	assert.ErrorIs(t, decodeBody(httptest.NewRecorder(), r, &dst), models.ErrInvalidInput)
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, models.ErrRateLimited)

	requireError(t, rr, http.StatusTooManyRequests, "rate_limited")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}
