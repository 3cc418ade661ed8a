package main

import (
	"reflect"
	"testing"
)

func TestRewriteMemberLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"trackup"},
			want: []string{"trackup"},
		},
		{
			name: "member ref first token",
			in:   []string{"trackup", "@Alice"},
			want: []string{"trackup", "members", "show", "Alice"},
		},
		{
			name: "member ref after value flag",
			in:   []string{"trackup", "--server", "http://localhost:9000", "@Alice"},
			want: []string{"trackup", "--server", "http://localhost:9000", "members", "show", "Alice"},
		},
		{
			name: "member ref after equals flag",
			in:   []string{"trackup", "--format=edn", "@Alice"},
			want: []string{"trackup", "--format=edn", "members", "show", "Alice"},
		},
		{
			name: "member ref after bool flag",
			in:   []string{"trackup", "--pretty", "@Alice"},
			want: []string{"trackup", "--pretty", "members", "show", "Alice"},
		},
		{
			name: "member ref after double dash",
			in:   []string{"trackup", "--", "@Alice"},
			want: []string{"trackup", "--", "members", "show", "Alice"},
		},
		{
			name: "trailing flags kept",
			in:   []string{"trackup", "@Alice", "--pretty"},
			want: []string{"trackup", "members", "show", "Alice", "--pretty"},
		},
		{
			name: "bare at sign not rewritten",
			in:   []string{"trackup", "@"},
			want: []string{"trackup", "@"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"trackup", "members", "show", "@Alice"},
			want: []string{"trackup", "members", "show", "@Alice"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"trackup", "wat"},
			want: []string{"trackup", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteMemberLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
