package rank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/recall"
)

func itemWith(id string, features map[string]float64) *core.Item {
	it := core.NewItem(id)
	for k, v := range features {
		it.PutFeature(k, v)
	}
	return it
}

func TestBlendNode_HybridMerge(t *testing.T) {
	items := []*core.Item{
		itemWith("a1", map[string]float64{recall.FeatureContentRaw: 0.9, recall.FeatureCFRaw: 1.0}),
		itemWith("a2", map[string]float64{recall.FeatureContentRaw: 0.1, recall.FeatureCFRaw: 5.0}),
		itemWith("a3", map[string]float64{recall.FeatureContentRaw: 0.5, recall.FeatureCFRaw: 3.0}),
	}

	node := NewBlendNode(0.6)
	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	scores := make(map[string]float64, len(out))
	for _, it := range out {
		scores[it.ID] = it.Score
	}

	// a1: content norm 1.0, cf norm 0.0 -> 0.6
	// a2: content norm 0.0, cf norm 1.0 -> 0.4
	// a3: content norm 0.5, cf norm 0.5 -> 0.5
	want := map[string]float64{"a1": 0.6, "a2": 0.4, "a3": 0.5}
	for id, w := range want {
		if math.Abs(scores[id]-w) > 1e-9 {
			t.Errorf("score(%s) = %v, want %v", id, scores[id], w)
		}
	}

	// sorted by score desc
	if out[0].ID != "a1" || out[1].ID != "a3" || out[2].ID != "a2" {
		t.Errorf("order = %s,%s,%s, want a1,a3,a2", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestBlendNode_NormalizedBounds(t *testing.T) {
	items := []*core.Item{
		itemWith("a1", map[string]float64{recall.FeatureContentRaw: -3.0}),
		itemWith("a2", map[string]float64{recall.FeatureContentRaw: 12.5}),
		itemWith("a3", map[string]float64{recall.FeatureContentRaw: 4.0}),
	}

	node := NewBlendNode(0.6)
	out, _ := node.Process(context.Background(), &core.RecommendContext{}, items)
	for _, it := range out {
		v, ok := it.GetFeature(FeatureContentNorm)
		if !ok {
			t.Fatalf("item %s missing normalized feature", it.ID)
		}
		if v < 0 || v > 1 {
			t.Errorf("normalized score %v out of [0,1] for %s", v, it.ID)
		}
	}
}

func TestBlendNode_ConstantFeatureMapsToZero(t *testing.T) {
	items := []*core.Item{
		itemWith("a1", map[string]float64{recall.FeatureContentRaw: 0.7}),
		itemWith("a2", map[string]float64{recall.FeatureContentRaw: 0.7}),
	}

	node := NewBlendNode(0.6)
	out, _ := node.Process(context.Background(), &core.RecommendContext{}, items)
	for _, it := range out {
		if it.Score != 0 {
			t.Errorf("constant feature must normalize to 0, got %v for %s", it.Score, it.ID)
		}
	}
}

func TestBlendNode_ContentOnlyFallback(t *testing.T) {
	// no candidate carries cf_raw: final score is the normalized content score alone
	items := []*core.Item{
		itemWith("a1", map[string]float64{recall.FeatureContentRaw: 2.0}),
		itemWith("a2", map[string]float64{recall.FeatureContentRaw: 0.0}),
	}

	node := NewBlendNode(0.6)
	out, _ := node.Process(context.Background(), &core.RecommendContext{}, items)
	scores := map[string]float64{}
	for _, it := range out {
		scores[it.ID] = it.Score
	}
	if math.Abs(scores["a1"]-1.0) > 1e-9 {
		t.Errorf("content-only top score = %v, want 1.0 (not scaled by weight)", scores["a1"])
	}
}

func TestBlendNode_MissingCFContributesNothing(t *testing.T) {
	// a2 has no cf entry: it gets only the weighted content component,
	// and the cf normalization range is computed without it
	items := []*core.Item{
		itemWith("a1", map[string]float64{recall.FeatureContentRaw: 1.0, recall.FeatureCFRaw: 2.0}),
		itemWith("a2", map[string]float64{recall.FeatureContentRaw: 1.0}),
		itemWith("a3", map[string]float64{recall.FeatureContentRaw: 0.0, recall.FeatureCFRaw: 4.0}),
	}

	node := NewBlendNode(0.6)
	out, _ := node.Process(context.Background(), &core.RecommendContext{}, items)
	scores := map[string]float64{}
	for _, it := range out {
		scores[it.ID] = it.Score
		if it.ID == "a2" {
			if _, ok := it.GetFeature(FeatureCFNorm); ok {
				t.Error("a2 must not get a cf_norm feature")
			}
		}
	}
	// content norms: a1=1, a2=1, a3=0; cf norms: a1=0, a3=1
	if math.Abs(scores["a2"]-0.6) > 1e-9 {
		t.Errorf("score(a2) = %v, want 0.6", scores["a2"])
	}
	if math.Abs(scores["a3"]-0.4) > 1e-9 {
		t.Errorf("score(a3) = %v, want 0.4", scores["a3"])
	}
}

func TestBlendNode_AlphaOverride(t *testing.T) {
	items := []*core.Item{
		itemWith("a1", map[string]float64{recall.FeatureContentRaw: 1.0, recall.FeatureCFRaw: 0.0}),
		itemWith("a2", map[string]float64{recall.FeatureContentRaw: 0.0, recall.FeatureCFRaw: 1.0}),
	}

	rctx := &core.RecommendContext{}
	rctx.PutParam(ParamAlpha, 1.0)

	node := NewBlendNode(0.6)
	out, _ := node.Process(context.Background(), rctx, items)
	scores := map[string]float64{}
	for _, it := range out {
		scores[it.ID] = it.Score
	}
	if scores["a1"] != 1.0 || scores["a2"] != 0.0 {
		t.Errorf("alpha=1 must make scores content-only: got a1=%v a2=%v", scores["a1"], scores["a2"])
	}
}

func TestBlendNode_DeterministicTieBreak(t *testing.T) {
	items := []*core.Item{
		itemWith("b", map[string]float64{recall.FeatureContentRaw: 0.7}),
		itemWith("a", map[string]float64{recall.FeatureContentRaw: 0.7}),
		itemWith("c", map[string]float64{recall.FeatureContentRaw: 0.7}),
	}

	node := NewBlendNode(0.6)
	out, _ := node.Process(context.Background(), &core.RecommendContext{}, items)
	if out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Errorf("equal scores must order by id asc, got %s,%s,%s", out[0].ID, out[1].ID, out[2].ID)
	}
}
