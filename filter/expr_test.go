package filter

import (
	"context"
	"testing"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pkg/utils"
)

func TestExprFilter_ShouldFilter(t *testing.T) {
	item := core.NewItem("a1")
	item.Score = 0.8
	item.Meta["city"] = "Lyon"
	item.PutFeature("content_raw", 0.02)
	item.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})

	rctx := &core.RecommendContext{UserID: "u1"}

	tests := []struct {
		name   string
		expr   string
		filter bool
	}{
		{"empty expression keeps", "", false},
		{"score predicate", `item.score > 0.5`, true},
		{"meta predicate", `item.meta.city == "Paris"`, false},
		{"feature predicate", `item.features.content_raw < 0.1`, true},
		{"label access", `label.recall_source == "content"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewExprFilter(tt.expr)
			got, err := f.ShouldFilter(context.Background(), rctx, item)
			if err != nil {
				t.Fatalf("ShouldFilter: %v", err)
			}
			if got != tt.filter {
				t.Errorf("expr %q = %v, want %v", tt.expr, got, tt.filter)
			}
		})
	}
}

func TestFilterNode_CombinesFilters(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		NewExprFilter(`item.score > 0.5`),
	}}

	low := core.NewItem("low")
	low.Score = 0.2
	high := core.NewItem("high")
	high.Score = 0.9

	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{low, high})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != "low" {
		t.Fatalf("want only low to survive, got %v", out)
	}
}
