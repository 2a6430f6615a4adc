package hist

import (
	"testing"
	"time"

	"github.com/paloj/copyto/pkg/history"
)

func TestFilterSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []*history.Record{
		{ID: "old", Started: now.Add(-72 * time.Hour)},
		{ID: "edge", Started: now.Add(-24 * time.Hour)},
		{ID: "recent", Started: now.Add(-time.Hour)},
	}

	l := &List{Since: 24 * time.Hour, Now: func() time.Time { return now }}
	kept := l.filter(records)

	if len(kept) != 2 {
		t.Fatalf("expected 2 records, got %d", len(kept))
	}
	if kept[0].ID != "edge" || kept[1].ID != "recent" {
		t.Fatalf("unexpected records kept: %s, %s", kept[0].ID, kept[1].ID)
	}
}

func TestFilterZeroWindowKeepsAll(t *testing.T) {
	records := []*history.Record{
		{ID: "a", Started: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Started: time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	l := &List{}
	if kept := l.filter(records); len(kept) != 2 {
		t.Fatalf("expected every record, got %d", len(kept))
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		list List
		want string
	}{
		{"plain", List{}, "Copy history"},
		{"nickname", List{Nickname: "nas"}, "Copy history for nas"},
		{"window", List{Since: 48 * time.Hour, Window: "2d"}, "Copy history, last 2d"},
		{"derived label", List{Since: 48 * time.Hour}, "Copy history, last 2d"},
		{"both", List{Nickname: "nas", Since: time.Hour, Window: "1h"}, "Copy history for nas, last 1h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.title(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
