package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"safety_reports/internal/models"
	"safety_reports/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{&services.ValidationError{Fields: map[string]string{"place": "This field is required."}}, http.StatusBadRequest},
		{fmt.Errorf("update: %w", services.ErrInvalidStatus), http.StatusBadRequest},
		{services.ErrNotAuthenticated, http.StatusUnauthorized},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrPermissionDenied, http.StatusForbidden},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrConflict, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		respondError(c, "test", tc.err)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondError(c, "test", errors.New("connection reset"))
	assert.JSONEq(t, `{"error":"connection reset"}`, rec.Body.String())
}

func TestStatusOptions(t *testing.T) {
	opts := statusOptions()
	assert.Len(t, opts, 4)
	assert.Equal(t, "waiting", opts[0].Code)
	assert.Equal(t, "Waiting investigation", opts[0].Label)
}

func TestCommentResponseCanEdit(t *testing.T) {
	author := &models.User{ID: 1, Username: "alice"}
	other := &models.User{ID: 2, Username: "bob"}
	cm := &models.Comment{ID: 5, AuthorID: 1, Author: author, Content: "hi"}

	assert.True(t, toCommentResponse(author, cm).CanEdit)
	assert.False(t, toCommentResponse(other, cm).CanEdit)
	assert.False(t, toCommentResponse(nil, cm).CanEdit)
	assert.Equal(t, "alice", toCommentResponse(nil, cm).Author)
}
