package dag

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildLevels(t *testing.T) {
	tests := []struct {
		name  string
		graph Graph
		want  [][]string
		chain bool
	}{
		{
			name:  "single node",
			graph: Graph{Nodes: []string{"step-1"}},
			want:  [][]string{{"step-1"}},
			chain: true,
		},
		{
			name: "linear chain",
			graph: Graph{
				Nodes: []string{"step-1", "step-2", "notify-slack"},
				Edges: []Edge{{"step-1", "step-2"}, {"step-2", "notify-slack"}},
			},
			want:  [][]string{{"step-1"}, {"step-2"}, {"notify-slack"}},
			chain: true,
		},
		{
			name: "fan out keeps declaration order",
			graph: Graph{
				Nodes: []string{"a", "c", "b"},
				Edges: []Edge{{"a", "b"}, {"a", "c"}},
			},
			want:  [][]string{{"a"}, {"c", "b"}},
			chain: false,
		},
		{
			name:  "two roots",
			graph: Graph{Nodes: []string{"a", "b"}},
			want:  [][]string{{"a", "b"}},
			chain: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := BuildLevels(&tt.graph)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(levels, tt.want) {
				t.Errorf("got %v, want %v", levels, tt.want)
			}
			if IsChain(levels) != tt.chain {
				t.Errorf("IsChain = %v, want %v", IsChain(levels), tt.chain)
			}
		})
	}
}

func TestBuildLevelsErrors(t *testing.T) {
	tests := []struct {
		name    string
		graph   Graph
		wantErr string
	}{
		{"unknown from", Graph{Nodes: []string{"a"}, Edges: []Edge{{"ghost", "a"}}}, `unknown node "ghost"`},
		{"unknown to", Graph{Nodes: []string{"a"}, Edges: []Edge{{"a", "ghost"}}}, `unknown node "ghost"`},
		{"duplicate", Graph{Nodes: []string{"a", "a"}}, `duplicate node "a"`},
		{"cycle", Graph{Nodes: []string{"a", "b"}, Edges: []Edge{{"a", "b"}, {"b", "a"}}}, "cycle detected"},
		{"self loop", Graph{Nodes: []string{"a"}, Edges: []Edge{{"a", "a"}}}, "cycle detected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLevels(&tt.graph)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGraphBuilders(t *testing.T) {
	var g Graph
	g.AddNode("step-1")
	g.AddNode("step-2")
	g.AddEdge("step-1", "step-2")
	levels, err := BuildLevels(&g)
	if err != nil || len(levels) != 2 {
		t.Fatalf("unexpected result %v %v", levels, err)
	}
}
