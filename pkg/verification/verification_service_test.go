package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"EcoFeast-Backend/domain"
)

func setVisionEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-test")
}

func visionServer(t *testing.T, handler http.HandlerFunc) (VerificationService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc := NewWithClient(&http.Client{Timeout: 5 * time.Second}, srv.URL)
	return svc, srv
}

func candidateResponse(text string) []byte {
	payload := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
			},
		},
	}
	data, _ := json.Marshal(payload)
	return data
}

func TestVerifySuccess(t *testing.T) {
	setVisionEnv(t)
	svc, _ := visionServer(t, func(w http.ResponseWriter, r *http.Request) {
		verdict := "```json\n{\"isSafe\": true, \"confidence\": 0.92, \"description\": \"Fresh produce, no spoilage visible.\", \"freshnessScore\": 88}\n```"
		w.Write(candidateResponse(verdict))
	})

	got, err := svc.VerifyFoodImage(context.Background(), []byte("fake-jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("VerifyFoodImage returned error: %v", err)
	}

	want := domain.VerificationResult{
		IsSafe:         true,
		Confidence:     0.92,
		Description:    "Fresh produce, no spoilage visible.",
		FreshnessScore: 88,
	}
	if got != want {
		t.Errorf("VerifyFoodImage = %+v; want %+v", got, want)
	}
}

func TestVerifyFallbackOnServerError(t *testing.T) {
	setVisionEnv(t)
	svc, _ := visionServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})

	got, err := svc.VerifyFoodImage(context.Background(), []byte("fake-jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("VerifyFoodImage returned error: %v", err)
	}
	if got != domain.FallbackVerification() {
		t.Errorf("VerifyFoodImage = %+v; want fixed fallback", got)
	}
}

func TestVerifyFallbackOnTransportError(t *testing.T) {
	setVisionEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	svc := NewWithClient(&http.Client{Timeout: time.Second}, srv.URL)

	got, err := svc.VerifyFoodImage(context.Background(), []byte("fake-jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("VerifyFoodImage returned error: %v", err)
	}
	if got != domain.FallbackVerification() {
		t.Errorf("VerifyFoodImage = %+v; want fixed fallback", got)
	}
}

func TestVerifyFallbackOnMalformedVerdict(t *testing.T) {
	setVisionEnv(t)
	cases := map[string]string{
		"not json":      "the food looks fine to me",
		"missing field": `{"isSafe": true, "confidence": 0.8, "description": "ok"}`,
		"bad range":     `{"isSafe": true, "confidence": 7.5, "description": "ok", "freshnessScore": 90}`,
	}

	for name, verdict := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := visionServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write(candidateResponse(verdict))
			})

			got, err := svc.VerifyFoodImage(context.Background(), []byte("fake-jpeg"), "image/jpeg")
			if err != nil {
				t.Fatalf("VerifyFoodImage returned error: %v", err)
			}
			if got != domain.FallbackVerification() {
				t.Errorf("VerifyFoodImage = %+v; want fixed fallback", got)
			}
		})
	}
}

func TestVerifyFallbackOnEmptyCandidates(t *testing.T) {
	setVisionEnv(t)
	svc, _ := visionServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	})

	got, err := svc.VerifyFoodImage(context.Background(), []byte("fake-jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("VerifyFoodImage returned error: %v", err)
	}
	if got != domain.FallbackVerification() {
		t.Errorf("VerifyFoodImage = %+v; want fixed fallback", got)
	}
}

func TestVerifyEmptyImageIsCallerError(t *testing.T) {
	setVisionEnv(t)
	svc := NewVerificationService()

	_, err := svc.VerifyFoodImage(context.Background(), nil, "image/jpeg")
	if err != domain.ErrEmptyImage {
		t.Errorf("VerifyFoodImage(empty) error = %v; want ErrEmptyImage", err)
	}
}
