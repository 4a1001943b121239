package artifact

import (
	"math"
	"reflect"
	"testing"
)

func TestVectorizer_Tokenize(t *testing.T) {
	v := &Vectorizer{NGram: 2}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "uni and bigrams",
			text: "Morning Hiking Trip",
			want: []string{"morning", "hiking", "trip", "morning hiking", "hiking trip"},
		},
		{
			name: "punctuation splits",
			text: "yoga, relax!",
			want: []string{"yoga", "relax", "yoga relax"},
		},
		{
			name: "empty text",
			text: "  ",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestVectorizer_TransformIgnoresUnknownTokens(t *testing.T) {
	v := &Vectorizer{
		NGram: 1,
		IDF:   map[string]float64{"hiking": 1.5},
	}
	vec := v.Transform("hiking unknownword")
	if len(vec) != 1 {
		t.Fatalf("want 1 token, got %v", vec)
	}
	if math.Abs(vec["hiking"]-1.0) > 1e-9 {
		t.Errorf("single token vector must normalize to 1, got %v", vec["hiking"])
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	vec := map[string]float64{}
	if got := Normalize(vec); len(got) != 0 {
		t.Errorf("zero vector must stay empty, got %v", got)
	}
}

func TestCFModel_VectorLookups(t *testing.T) {
	m := &CFModel{
		UserIndex:   map[string]int{"u1": 0},
		ItemIndex:   map[string]int{"a1": 0},
		UserFactors: [][]float64{{0.1, 0.2}},
		ItemFactors: [][]float64{{0.3, 0.4}},
	}

	if _, ok := m.UserVector("u1"); !ok {
		t.Error("u1 must resolve")
	}
	if _, ok := m.UserVector("ghost"); ok {
		t.Error("unknown user must not resolve")
	}
	if _, ok := m.ItemVector("ghost"); ok {
		t.Error("unknown item must not resolve")
	}

	var nilModel *CFModel
	if _, ok := nilModel.UserVector("u1"); ok {
		t.Error("nil model must not resolve")
	}
}
