package geo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestDetector(t *testing.T, h http.HandlerFunc) *Detector {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	d := NewDetector()
	d.URL = server.URL
	return d
}

func TestDetect_Success(t *testing.T) {
	d := newTestDetector(t, func(w http.ResponseWriter, r *http.Request) {
		resp := ipAPIResponse{
			Status:   "success",
			Lat:      51.5074,
			Lon:      -0.1278,
			City:     "London",
			Country:  "United Kingdom",
			Timezone: "Europe/London",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	loc, err := d.Detect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Latitude != 51.5074 || loc.Longitude != -0.1278 {
		t.Errorf("coordinates = %v, %v", loc.Latitude, loc.Longitude)
	}
	if loc.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want %q", loc.Timezone, "Europe/London")
	}
	if loc.Label() != "London, United Kingdom" {
		t.Errorf("Label() = %q", loc.Label())
	}
}

func TestDetect_FailureStatus(t *testing.T) {
	d := newTestDetector(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ipAPIResponse{Status: "fail", Message: "reserved range"})
	})

	_, err := d.Detect(context.Background())
	if !errors.Is(err, ErrDetectFailed) {
		t.Fatalf("error = %v, want ErrDetectFailed", err)
	}
	if !strings.Contains(err.Error(), "reserved range") {
		t.Errorf("error %q should carry the service message", err)
	}
}

func TestDetect_HTTPError(t *testing.T) {
	d := newTestDetector(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := d.Detect(context.Background())
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want status 429", err)
	}
}

func TestDetect_InvalidJSON(t *testing.T) {
	d := newTestDetector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	if _, err := d.Detect(context.Background()); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDetect_ConnectionRefused(t *testing.T) {
	d := NewDetector()
	d.URL = "http://127.0.0.1:1"

	if _, err := d.Detect(context.Background()); err == nil {
		t.Fatal("expected error for connection refused")
	}
}

func TestLocation_Label(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{City: "Mecca", Country: "Saudi Arabia"}, "Mecca, Saudi Arabia"},
		{Location{City: "Mecca"}, "Mecca"},
		{Location{Country: "Saudi Arabia"}, "Saudi Arabia"},
		{Location{}, ""},
	}
	for _, tt := range tests {
		if got := tt.loc.Label(); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.loc, got, tt.want)
		}
	}
}
