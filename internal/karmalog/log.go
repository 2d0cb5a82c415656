// Package karmalog is an append-only in-memory log of actions and their
// consequences. Entries form causal chains through parent pointers; the log
// is the collaborator that feeds ordered sequences into the auditor.
package karmalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/sattva-labs/dharmakit/internal/model"
)

// Entry is one recorded action. ID and RecordedAt are assigned by the log;
// ParentID links a consequence back to the action that caused it.
type Entry struct {
	ID          string              `json:"id"`
	RecordedAt  time.Time           `json:"recordedAt"`
	Action      model.AuditLogEntry `json:"action"`
	ParentID    string              `json:"parentId,omitempty"`
	Consequence string              `json:"consequence,omitempty"`
}

// Log is the append-only store. Entries are never mutated or removed after
// Record returns. Not safe for concurrent use; a single logical owner is
// assumed.
type Log struct {
	entries  []Entry
	byID     map[string]int
	children map[string][]string
	sink     Sink
	newID    func() string
	now      func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithSink mirrors every recorded entry to a sink.
func WithSink(s Sink) Option {
	return func(l *Log) { l.sink = s }
}

// WithIDGenerator replaces the uuid generator, for deterministic tests.
func WithIDGenerator(gen func() string) Option {
	return func(l *Log) { l.newID = gen }
}

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// New creates an empty log.
func New(opts ...Option) *Log {
	l := &Log{
		byID:     map[string]int{},
		children: map[string][]string{},
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Record appends an action to the log, assigns it an ID and timestamp, and
// returns the stored entry. An unknown parent ID is kept as-is: the chain
// is simply rooted at this entry until the parent appears (it never will in
// an append-only log, but the record is not rejected).
func (l *Log) Record(action model.AuditLogEntry, parentID, consequence string) Entry {
	e := Entry{
		ID:          l.newID(),
		RecordedAt:  l.now().UTC(),
		Action:      action,
		ParentID:    parentID,
		Consequence: consequence,
	}
	if action.ID == "" {
		e.Action.ID = e.ID
	}
	l.byID[e.ID] = len(l.entries)
	l.entries = append(l.entries, e)
	if parentID != "" {
		l.children[parentID] = append(l.children[parentID], e.ID)
	}
	if l.sink != nil {
		l.sink.Write(&e)
	}
	return e
}

// Get returns the entry with the given ID; absence is ok=false, not an
// error.
func (l *Log) Get(id string) (Entry, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// All returns a copy of every entry in append order.
func (l *Log) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// ByAgent returns every entry whose action carries the agent tag, in append
// order.
func (l *Log) ByAgent(agent string) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Action.Agent == agent {
			out = append(out, e)
		}
	}
	return out
}

// Chain walks parent pointers from the given entry up to its root and
// returns the path in root-first order. Absence of the starting ID returns
// nil.
func (l *Log) Chain(id string) []Entry {
	var reversed []Entry
	seen := map[string]bool{}
	cur := id
	for cur != "" && !seen[cur] {
		seen[cur] = true
		e, ok := l.Get(cur)
		if !ok {
			break
		}
		reversed = append(reversed, e)
		cur = e.ParentID
	}
	if len(reversed) == 0 {
		return nil
	}
	out := make([]Entry, len(reversed))
	for i, e := range reversed {
		out[len(reversed)-1-i] = e
	}
	return out
}

// Consequences returns the subtree of entries caused by the given entry,
// depth-first in recording order, excluding the entry itself.
func (l *Log) Consequences(id string) []Entry {
	var out []Entry
	for _, childID := range l.children[id] {
		if child, ok := l.Get(childID); ok {
			out = append(out, child)
			out = append(out, l.Consequences(childID)...)
		}
	}
	return out
}

// AuditEntries converts the full log into the auditor's input shape in
// append order.
func (l *Log) AuditEntries() []model.AuditLogEntry {
	out := make([]model.AuditLogEntry, len(l.entries))
	for i, e := range l.entries {
		a := e.Action
		if a.ParentID == "" {
			a.ParentID = e.ParentID
		}
		out[i] = a
	}
	return out
}
