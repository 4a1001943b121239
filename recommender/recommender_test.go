package recommender

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	_ "github.com/rushteam/actireco/config/builders"
	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/dataset"
	"github.com/rushteam/actireco/pipeline"
	"github.com/rushteam/actireco/store"
)

const activitiesCSV = `activity_id,title,tags,city
a_cook,Evening Cooking Workshop,cooking;food,lyon
b_yoga,Sunset Yoga,yoga;relax,lyon
c_hike,Mountain Hiking,hiking;outdoor,grenoble
`

const interactionsCSV = `user_id,activity_id,event,rating
u2,b_yoga,rate,5
u2,c_hike,rate,1
u3,c_hike,rate,4
`

const usersCSV = `user_id,interests
u1,cooking;food
u2,yoga
`

type stubSentiment struct {
	mood core.Mood
}

func (stubSentiment) Name() string { return "stub" }
func (s stubSentiment) Classify(context.Context, string) (core.Mood, error) {
	return s.mood, nil
}

func writeTestData(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	for name, content := range map[string]string{
		dataset.ActivitiesFile:   activitiesCSV,
		dataset.InteractionsFile: interactionsCSV,
		dataset.UsersFile:        usersCSV,
	} {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dataDir
}

func newTestRecommender(t *testing.T, opts Options) *Recommender {
	t.Helper()
	opts.DataDir = writeTestData(t)
	opts.ModelsDir = t.TempDir()
	if opts.KV == nil {
		opts.KV = store.NewMemoryStore()
	}
	rec, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { rec.Close() })
	return rec
}

func ids(resp *Response) []string {
	out := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, it.ActivityID)
	}
	return out
}

func TestRecommend_ContentRanking(t *testing.T) {
	rec := newTestRecommender(t, Options{})

	resp, err := rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 3})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.CFUsed {
		t.Error("u1 has no interactions, cf must not be used")
	}
	// cooking interests put a_cook on top; the rest tie at 0 and order by id
	if got := ids(resp); !reflect.DeepEqual(got, []string{"a_cook", "b_yoga", "c_hike"}) {
		t.Errorf("order = %v", got)
	}
	if resp.Items[0].Score < resp.Items[1].Score {
		t.Error("scores not descending")
	}
}

func TestRecommend_TopKZeroIsEmpty(t *testing.T) {
	rec := newTestRecommender(t, Options{})

	resp, err := rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 0})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("top_k=0 must return empty, got %v", ids(resp))
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	rec := newTestRecommender(t, Options{})
	req := Request{UserID: "u1", TopK: 3}

	first, err := rec.Recommend(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := rec.Recommend(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(ids(first), ids(again)) {
			t.Fatalf("ranking not deterministic: %v vs %v", ids(first), ids(again))
		}
	}
}

func TestRecommend_MoodBoostReorders(t *testing.T) {
	rec := newTestRecommender(t, Options{
		Sentiment: stubSentiment{mood: core.Mood{Label: core.MoodPositive, Confidence: 0.9}},
	})

	// without mood, b_yoga and c_hike tie at 0 and order by id
	plain, err := rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(plain); !reflect.DeepEqual(got, []string{"a_cook", "b_yoga", "c_hike"}) {
		t.Fatalf("baseline order = %v", got)
	}

	// positive mood boosts hiking above the tied yoga item
	boosted, err := rec.Recommend(context.Background(), Request{
		UserID: "u1", TopK: 3, MoodText: "feeling energetic",
	})
	if err != nil {
		t.Fatal(err)
	}
	if boosted.Mood == nil || boosted.Mood.Label != core.MoodPositive {
		t.Fatalf("mood not surfaced: %v", boosted.Mood)
	}
	if got := ids(boosted); !reflect.DeepEqual(got, []string{"a_cook", "c_hike", "b_yoga"}) {
		t.Errorf("boosted order = %v, want c_hike above b_yoga", got)
	}
}

func TestRecommend_FacetFilters(t *testing.T) {
	rec := newTestRecommender(t, Options{})

	resp, err := rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 3, City: "lyon"})
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(resp); !reflect.DeepEqual(got, []string{"a_cook", "b_yoga"}) {
		t.Errorf("city facet order = %v", got)
	}

	resp, err = rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 3, City: "nowhere"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("unknown city must leave no candidates, got %v", ids(resp))
	}
}

func TestRecommend_SeenFiltering(t *testing.T) {
	rec := newTestRecommender(t, Options{})

	// u2 interacted with b_yoga and c_hike in the training data
	resp, err := rec.Recommend(context.Background(), Request{UserID: "u2", TopK: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(resp); !reflect.DeepEqual(got, []string{"a_cook"}) {
		t.Errorf("seen items must be filtered, got %v", got)
	}

	resp, err = rec.Recommend(context.Background(), Request{UserID: "u2", TopK: 3, IncludeSeen: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 3 {
		t.Errorf("include_seen must keep all candidates, got %v", ids(resp))
	}
}

func TestLogInteraction_TakesEffectImmediately(t *testing.T) {
	rec := newTestRecommender(t, Options{})

	err := rec.LogInteraction(context.Background(), dataset.Interaction{
		UserID: "u1", ActivityID: "a_cook", Event: "view",
	})
	if err != nil {
		t.Fatalf("LogInteraction: %v", err)
	}

	resp, err := rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 3})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range ids(resp) {
		if id == "a_cook" {
			t.Error("freshly logged interaction must filter the item")
		}
	}
}

func TestLogInteraction_Validation(t *testing.T) {
	rec := newTestRecommender(t, Options{})

	bad := []dataset.Interaction{
		{UserID: "", ActivityID: "a_cook", Event: "view"},
		{UserID: "u1", ActivityID: "a_cook", Event: "teleport"},
	}
	for _, it := range bad {
		if err := rec.LogInteraction(context.Background(), it); !core.IsInvalidInput(err) {
			t.Errorf("LogInteraction(%+v): want INVALID_INPUT, got %v", it, err)
		}
	}
}

func TestRetrainCF_EnablesHybridScoring(t *testing.T) {
	rec := newTestRecommender(t, Options{})

	stats, err := rec.RetrainCF(context.Background(), 2)
	if err != nil {
		t.Fatalf("RetrainCF: %v", err)
	}
	if stats.Users != 2 || stats.Items != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if !rec.Artifacts().Snapshot().HasCF() {
		t.Fatal("cf artifacts not installed")
	}

	// u2 is in the trained model, so its requests now blend both sources
	resp, err := rec.Recommend(context.Background(), Request{UserID: "u2", TopK: 3, IncludeSeen: true})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.CFUsed {
		t.Error("cf must be used for a trained user after retrain")
	}
}

func TestRecommend_ConfiguredPipeline(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "activities"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "recall.fanout", Config: map[string]any{"sources": []any{"content", "mf"}}},
		{Type: "filter", Config: map[string]any{"filters": []any{
			"seen",
			map[string]any{"expr": `item.id == "b_yoga"`},
		}}},
		{Type: "rank.blend", Config: map[string]any{"content_weight": 0.6}},
	}
	rec := newTestRecommender(t, Options{PipelineConfig: cfg})

	// the expression filter in the configured chain drops b_yoga
	resp, err := rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 3})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := ids(resp); !reflect.DeepEqual(got, []string{"a_cook", "c_hike"}) {
		t.Errorf("order = %v, want b_yoga filtered by expression", got)
	}

	// request-level top_k still truncates a configured chain
	resp, err = rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(resp); !reflect.DeepEqual(got, []string{"a_cook"}) {
		t.Errorf("top_k=1 order = %v", got)
	}

	// the live interaction store is bound into the configured seen filter
	err = rec.LogInteraction(context.Background(), dataset.Interaction{
		UserID: "u1", ActivityID: "a_cook", Event: "view",
	})
	if err != nil {
		t.Fatal(err)
	}
	resp, err = rec.Recommend(context.Background(), Request{UserID: "u1", TopK: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(resp); !reflect.DeepEqual(got, []string{"c_hike"}) {
		t.Errorf("order after interaction = %v, want a_cook filtered", got)
	}
}

func TestNew_RejectsUnknownPipelineNode(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "recall.telepathy"}}

	_, err := New(Options{
		DataDir:        writeTestData(t),
		ModelsDir:      t.TempDir(),
		KV:             store.NewMemoryStore(),
		PipelineConfig: cfg,
	})
	if err == nil {
		t.Fatal("unknown node type must fail assembly")
	}
}

func TestRetrainCF_InvalidFactorsLeavesArtifactsAlone(t *testing.T) {
	rec := newTestRecommender(t, Options{})
	before := rec.Artifacts().Snapshot().Version

	if _, err := rec.RetrainCF(context.Background(), 99); !core.IsInvalidInput(err) {
		t.Fatalf("want INVALID_INPUT, got %v", err)
	}
	after := rec.Artifacts().Snapshot()
	if after.Version != before || after.HasCF() {
		t.Error("failed retrain must not touch the online snapshot")
	}
}
