package recall

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/actireco/artifact"
	"github.com/rushteam/actireco/core"
)

func testCFModel() *artifact.CFModel {
	return &artifact.CFModel{
		UserIndex:   map[string]int{"u1": 0},
		ItemIndex:   map[string]int{"a1": 0, "a2": 1}, // a3 unseen in training
		UserFactors: [][]float64{{1.0, 2.0}},
		ItemFactors: [][]float64{{0.5, 0.5}, {2.0, -1.0}},
	}
}

func TestMFRecall_ScoresFromFactors(t *testing.T) {
	ds := recallDataset()
	snap := newTestSnapshot(t, ds, testCFModel())

	items, err := NewMFRecall().Recall(context.Background(), ctxWithSnapshot(snap, "u1", nil))
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("only indexed activities may carry cf scores, got %d items", len(items))
	}

	scores := map[string]float64{}
	for _, it := range items {
		v, ok := it.GetFeature(FeatureCFRaw)
		if !ok {
			t.Fatalf("item %s missing cf_raw", it.ID)
		}
		scores[it.ID] = v
	}
	if math.Abs(scores["a1"]-1.5) > 1e-9 {
		t.Errorf("score(a1) = %v, want 1.5", scores["a1"])
	}
	if math.Abs(scores["a2"]-0.0) > 1e-9 {
		t.Errorf("score(a2) = %v, want 0.0", scores["a2"])
	}
}

func TestMFRecall_Unavailable(t *testing.T) {
	ds := recallDataset()

	tests := []struct {
		name string
		cf   *artifact.CFModel
		user string
	}{
		{"no cf model", nil, "u1"},
		{"unknown user", testCFModel(), "stranger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := newTestSnapshot(t, ds, tt.cf)
			_, err := NewMFRecall().Recall(context.Background(), ctxWithSnapshot(snap, tt.user, nil))
			if !core.IsUnavailable(err) {
				t.Fatalf("want UNAVAILABLE, got %v", err)
			}
		})
	}
}
