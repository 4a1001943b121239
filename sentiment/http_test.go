package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rushteam/actireco/core"
)

func TestHTTPClassifier_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req classifyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(classifyResp{Label: "positive", Confidence: 0.92})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL)
	mood, err := c.Classify(context.Background(), "feeling great")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if mood.Label != core.MoodPositive || mood.Confidence != 0.92 {
		t.Errorf("got %v, want positive/0.92", mood)
	}
}

func TestHTTPClassifier_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL)
	_, err := c.Classify(context.Background(), "feeling great")
	if !core.IsUnavailable(err) {
		t.Fatalf("want UNAVAILABLE, got %v", err)
	}
}

func TestHTTPClassifier_UnknownLabelIsNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(classifyResp{Label: "confused", Confidence: 0.99})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL)
	mood, err := c.Classify(context.Background(), "hmm")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if mood.Label != core.MoodNeutral {
		t.Errorf("unknown labels must map to neutral, got %v", mood.Label)
	}
}
