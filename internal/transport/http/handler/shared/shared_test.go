package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteUnauthorized(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteUnauthorized(rec, "authorization required")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var body struct {
		Error struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error.Message != "authorization required" {
		t.Errorf("unexpected message %q", body.Error.Message)
	}
	if body.Error.Code != http.StatusUnauthorized {
		t.Errorf("unexpected code %d", body.Error.Code)
	}
}

func TestIsValidAdminPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abcd1234", true},
		{"ABCDEFGH", true},
		{"short1", false},
		{"has space", false},
		{"symbols!!", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidAdminPassword(tt.password); got != tt.want {
			t.Errorf("IsValidAdminPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
