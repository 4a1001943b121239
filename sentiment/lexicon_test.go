package sentiment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/actireco/core"
)

func writeLexicon(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.json")
	data := `{"weights": {"happy": 1.5, "great": 1.0, "tired": -1.2, "sad": -1.5}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLexiconModel_Classify(t *testing.T) {
	m := NewLexiconModel(writeLexicon(t))

	tests := []struct {
		name string
		text string
		want core.MoodLabel
	}{
		{"positive", "feeling happy and great today!", core.MoodPositive},
		{"negative", "so tired and sad", core.MoodNegative},
		{"no lexicon hits", "the weather is cloudy", core.MoodNeutral},
		{"empty text", "", core.MoodNeutral},
		{"mixed cancels out", "happy but also sad", core.MoodNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mood, err := m.Classify(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if mood.Label != tt.want {
				t.Errorf("label = %s, want %s", mood.Label, tt.want)
			}
			if mood.Confidence < 0 || mood.Confidence > 1 {
				t.Errorf("confidence %v out of range", mood.Confidence)
			}
		})
	}
}

func TestLexiconModel_ConfidenceGrowsWithSignal(t *testing.T) {
	m := NewLexiconModel(writeLexicon(t))

	weak, _ := m.Classify(context.Background(), "great")
	strong, _ := m.Classify(context.Background(), "happy great happy")
	if strong.Confidence <= weak.Confidence {
		t.Errorf("stronger signal must raise confidence: weak=%v strong=%v",
			weak.Confidence, strong.Confidence)
	}
}

func TestLexiconModel_MissingFile(t *testing.T) {
	m := NewLexiconModel(filepath.Join(t.TempDir(), "missing.json"))

	_, err := m.Classify(context.Background(), "happy")
	if !core.IsUnavailable(err) {
		t.Fatalf("want UNAVAILABLE, got %v", err)
	}
}

func TestFallback_DegradesToNeutral(t *testing.T) {
	m := NewLexiconModel(filepath.Join(t.TempDir(), "missing.json"))
	f := NewFallback(m)

	mood, err := f.Classify(context.Background(), "happy")
	if err != nil {
		t.Fatalf("fallback must never fail: %v", err)
	}
	if mood.Label != core.MoodNeutral || mood.Confidence != 0 {
		t.Errorf("want neutral/0, got %v", mood)
	}
}
