package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gatemock-backend/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailWithDetail_Envelope(t *testing.T) {
	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		response.FailWithDetail(c, http.StatusConflict, response.ErrInvalidTransition, errors.New("submit in test_list"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(response.HeaderRequestID, "req-42")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error == nil || body.Error.Code != response.ErrInvalidTransition || body.Error.Detail != "submit in test_list" {
		t.Errorf("error = %+v", body.Error)
	}
	if body.Metadata.RequestID != "req-42" || w.Header().Get(response.HeaderRequestID) != "req-42" {
		t.Errorf("request id = %q / %q", body.Metadata.RequestID, w.Header().Get(response.HeaderRequestID))
	}
}

func TestSuccess_GeneratesRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { response.Success(c, http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != nil || body.Metadata.RequestID == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestGetMessage_UnknownCode(t *testing.T) {
	if response.GetMessage("NOPE") == "" {
		t.Fatal("empty message for unknown code")
	}
}
