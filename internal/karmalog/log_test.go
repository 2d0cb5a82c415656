package karmalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/sattva-labs/dharmakit/internal/model"
)

func testLog() *Log {
	n := 0
	return New(
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("k%d", n)
		}),
		WithClock(func() time.Time {
			return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		}),
	)
}

func TestRecord_AssignsIDAndPreservesOrder(t *testing.T) {
	l := testLog()
	first := l.Record(model.AuditLogEntry{Description: "one", Agent: "a"}, "", "")
	second := l.Record(model.AuditLogEntry{Description: "two", Agent: "a"}, "", "")

	if first.ID != "k1" || second.ID != "k2" {
		t.Errorf("unexpected IDs: %s, %s", first.ID, second.ID)
	}
	all := l.All()
	if len(all) != 2 || all[0].ID != "k1" || all[1].ID != "k2" {
		t.Errorf("append order not preserved: %+v", all)
	}
}

func TestGet_MissIsAbsence(t *testing.T) {
	l := testLog()
	if _, ok := l.Get("nope"); ok {
		t.Error("missing ID must return ok=false")
	}
}

func TestChain_RootFirstOrder(t *testing.T) {
	l := testLog()
	root := l.Record(model.AuditLogEntry{Description: "root"}, "", "")
	mid := l.Record(model.AuditLogEntry{Description: "mid"}, root.ID, "follow-up")
	leaf := l.Record(model.AuditLogEntry{Description: "leaf"}, mid.ID, "final")

	chain := l.Chain(leaf.ID)
	if len(chain) != 3 {
		t.Fatalf("chain length %d, want 3", len(chain))
	}
	if chain[0].ID != root.ID || chain[2].ID != leaf.ID {
		t.Errorf("chain not root-first: %s..%s", chain[0].ID, chain[2].ID)
	}

	if got := l.Chain("missing"); got != nil {
		t.Errorf("chain of a missing ID should be nil, got %+v", got)
	}
}

func TestConsequences_WalksDescendants(t *testing.T) {
	l := testLog()
	root := l.Record(model.AuditLogEntry{Description: "root"}, "", "")
	a := l.Record(model.AuditLogEntry{Description: "a"}, root.ID, "")
	l.Record(model.AuditLogEntry{Description: "b"}, root.ID, "")
	l.Record(model.AuditLogEntry{Description: "a1"}, a.ID, "")

	got := l.Consequences(root.ID)
	if len(got) != 3 {
		t.Fatalf("got %d consequences, want 3", len(got))
	}
	// Depth-first: a, a1, b.
	if got[0].Action.Description != "a" || got[1].Action.Description != "a1" || got[2].Action.Description != "b" {
		t.Errorf("unexpected traversal order: %+v", got)
	}

	if got := l.Consequences("leafless"); len(got) != 0 {
		t.Errorf("no children should mean empty, got %+v", got)
	}
}

func TestByAgent_Filters(t *testing.T) {
	l := testLog()
	l.Record(model.AuditLogEntry{Agent: "arjuna"}, "", "")
	l.Record(model.AuditLogEntry{Agent: "bhima"}, "", "")
	l.Record(model.AuditLogEntry{Agent: "arjuna"}, "", "")

	if got := len(l.ByAgent("arjuna")); got != 2 {
		t.Errorf("got %d arjuna entries, want 2", got)
	}
	if got := len(l.ByAgent("nobody")); got != 0 {
		t.Errorf("unknown agent should filter to empty, got %d", got)
	}
}

type captureSink struct {
	entries []string
}

func (c *captureSink) Write(e *Entry) { c.entries = append(c.entries, e.ID) }
func (c *captureSink) Close()         {}

func TestRecord_MirrorsToSink(t *testing.T) {
	sink := &captureSink{}
	n := 0
	l := New(
		WithSink(sink),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("k%d", n) }),
	)

	l.Record(model.AuditLogEntry{Description: "x"}, "", "")
	l.Record(model.AuditLogEntry{Description: "y"}, "", "")

	if len(sink.entries) != 2 || sink.entries[0] != "k1" {
		t.Errorf("sink did not observe records: %v", sink.entries)
	}
}

func TestAuditEntries_CarriesParentPointer(t *testing.T) {
	l := testLog()
	root := l.Record(model.AuditLogEntry{ID: "act-1", Agent: "a"}, "", "")
	l.Record(model.AuditLogEntry{ID: "act-2", Agent: "a"}, root.ID, "")

	entries := l.AuditEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[1].ParentID != root.ID {
		t.Errorf("parent pointer lost: %+v", entries[1])
	}
}
