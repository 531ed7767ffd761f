package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tuldokpos/internal/core/apperror"
	"tuldokpos/internal/infrastructure/http/v1/dto"
)

func errorRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", handler)
	return r
}

func TestErrorHandler_AppError(t *testing.T) {
	r := errorRouter(func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("sale", "abc"))
		c.Abort()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != apperror.CodeNotFound {
		t.Errorf("code = %q, want %q", body.Code, apperror.CodeNotFound)
	}
	if body.Message == "" {
		t.Error("message must not be empty")
	}
	if body.Details["entity"] != "sale" {
		t.Errorf("details = %v, want entity sale", body.Details)
	}
}

func TestErrorHandler_UnhandledError(t *testing.T) {
	r := errorRouter(func(c *gin.Context) {
		_ = c.Error(errors.New("pool exhausted"))
		c.Abort()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != apperror.CodeInternal {
		t.Errorf("code = %q, want %q", body.Code, apperror.CodeInternal)
	}
	if body.Message != "Internal server error" {
		t.Errorf("message = %q, internals must not leak", body.Message)
	}
}
