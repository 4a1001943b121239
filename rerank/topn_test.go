package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/actireco/core"
)

func scoredItem(id string, score float64) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	return it
}

func TestTopNNode_Process(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		items []*core.Item
		want  []string
	}{
		{
			name:  "truncates after sorting",
			n:     2,
			items: []*core.Item{scoredItem("a1", 0.2), scoredItem("a2", 0.9), scoredItem("a3", 0.5)},
			want:  []string{"a2", "a3"},
		},
		{
			name:  "fewer items than n",
			n:     10,
			items: []*core.Item{scoredItem("a1", 0.2), scoredItem("a2", 0.9)},
			want:  []string{"a2", "a1"},
		},
		{
			name:  "zero n returns empty",
			n:     0,
			items: []*core.Item{scoredItem("a1", 0.2)},
			want:  []string{},
		},
		{
			name:  "negative n returns empty",
			n:     -5,
			items: []*core.Item{scoredItem("a1", 0.2)},
			want:  []string{},
		},
		{
			name:  "ties broken by id asc",
			n:     3,
			items: []*core.Item{scoredItem("c", 0.5), scoredItem("a", 0.5), scoredItem("b", 0.5)},
			want:  []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, tt.items)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if len(out) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(out), len(tt.want))
			}
			for i, id := range tt.want {
				if out[i].ID != id {
					t.Errorf("out[%d] = %s, want %s", i, out[i].ID, id)
				}
			}
		})
	}
}
