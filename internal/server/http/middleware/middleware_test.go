package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLoggerEmitsOneLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.POST("/webhooks/:provider", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/webhooks/pix_direct", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	line := buf.String()
	if !strings.Contains(line, `"path":"/webhooks/pix_direct"`) {
		t.Fatalf("expected path in log line: %s", line)
	}
	if !strings.Contains(line, `"provider":"pix_direct"`) {
		t.Fatalf("expected provider attribute: %s", line)
	}
	if !strings.Contains(line, `"status":200`) {
		t.Fatalf("expected status attribute: %s", line)
	}
}

func TestRequestLoggerServerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Fatalf("expected error level for 5xx: %s", buf.String())
	}
}

func TestDecompressRequest(t *testing.T) {
	engine := gin.New()
	engine.Use(DecompressRequest())

	var received []byte
	engine.POST("/webhooks/pix_direct", func(c *gin.Context) {
		received, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	payload := []byte(`{"external_reference":"ord-1","status":"paid"}`)
	var compressed bytes.Buffer
	writer := gzip.NewWriter(&compressed)
	if _, err := writer.Write(payload); err != nil {
		t.Fatalf("compress payload: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/webhooks/pix_direct", &compressed)
	req.Header.Set("Content-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !bytes.Equal(received, payload) {
		t.Fatalf("expected inflated payload, got %q", received)
	}
}

func TestDecompressRequestRejectsCorruptBody(t *testing.T) {
	engine := gin.New()
	engine.Use(DecompressRequest())
	engine.POST("/webhooks/pix_direct", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/webhooks/pix_direct", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for corrupt gzip, got %d", recorder.Code)
	}
}

func TestDecompressRequestPassThrough(t *testing.T) {
	engine := gin.New()
	engine.Use(DecompressRequest())

	var received []byte
	engine.POST("/orders", func(c *gin.Context) {
		received, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	payload := []byte(`{"method":"pix"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(payload))
	engine.ServeHTTP(httptest.NewRecorder(), req)

	if !bytes.Equal(received, payload) {
		t.Fatalf("expected untouched body, got %q", received)
	}
}
