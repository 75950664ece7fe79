package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"

	"github.com/gin-gonic/gin"
)

func TestErrorHandler(t *testing.T) {
	logger.Init("test")

	setup := func(err error) *gin.Engine {
		r := gin.New()
		r.Use(RequestLogging(), ErrorHandler())
		r.GET("/test", func(c *gin.Context) {
			_ = c.Error(err)
		})
		return r
	}

	t.Run("app_error", func(t *testing.T) {
		rec := doRequest(setup(apperrors.ErrLoanClosed), "")
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
		errObj, _ := parseBody(t, rec)["error"].(map[string]any)
		if code, _ := errObj["code"].(string); code != "LOAN_CLOSED" {
			t.Errorf("error code = %q, want LOAN_CLOSED", code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
	})

	t.Run("unexpected_error_is_hidden", func(t *testing.T) {
		rec := doRequest(setup(errors.New("disk on fire")), "")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
		errObj, _ := parseBody(t, rec)["error"].(map[string]any)
		if msg, _ := errObj["message"].(string); msg == "disk on fire" {
			t.Error("internal error details leaked to client")
		}
	})
}

func TestRequestLogging(t *testing.T) {
	logger.Init("test")

	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	t.Run("reuses_client_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
			t.Errorf("X-Request-ID = %q, want abc-123", got)
		}
		if rec.Body.String() != "abc-123" {
			t.Errorf("context id = %q", rec.Body.String())
		}
	})

	t.Run("generates_missing_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
		if len(rec.Header().Get("X-Request-ID")) != 36 {
			t.Errorf("expected generated uuid, got %q", rec.Header().Get("X-Request-ID"))
		}
	})
}
