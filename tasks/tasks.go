// Package tasks implements a small task-tracking service on top of the
// central framed-RPC runtime: the spec's own worked example (spec 8,
// scenario 6), ported from original_source/examples/tasks/src/lib.rs's
// TaskStore and its TaskCommand/TaskQuery capabilities.
package tasks

import (
	"strings"

	"github.com/google/uuid"
)

// Task is one tracked item of work.
type Task struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
}

// NewTask creates a Task with a fresh id, incomplete by default.
func NewTask(name string) Task {
	return Task{ID: uuid.New().String(), Name: name, Complete: false}
}

// QueryOp combines sub-queries in a Compound query.
type QueryOp string

const (
	QueryAnd QueryOp = "And"
	QueryOr  QueryOp = "Or"
)

// Query is a small boolean expression over a Task's fields, ported from
// the original's TaskQuery enum. Exactly one of the fields is set,
// discriminated by Type.
type Query struct {
	Type string `json:"type"`

	// Id
	ID string `json:"id,omitempty"`
	// Done
	Done bool `json:"done,omitempty"`
	// Name: NameContains or NameIs
	NameValue string `json:"name_value,omitempty"`
	// Compound
	Op      QueryOp `json:"op,omitempty"`
	Queries []Query `json:"queries,omitempty"`
}

const (
	QueryTypeAll          = "All"
	QueryTypeID           = "Id"
	QueryTypeDone         = "Done"
	QueryTypeNameContains = "NameContains"
	QueryTypeNameIs       = "NameIs"
	QueryTypeCompound     = "Compound"
)

// All matches every task.
func All() Query { return Query{Type: QueryTypeAll} }

// ByID matches the task with the given id.
func ByID(id string) Query { return Query{Type: QueryTypeID, ID: id} }

// ByDone matches every task whose completion state equals done.
func ByDone(done bool) Query { return Query{Type: QueryTypeDone, Done: done} }

// NameContains matches tasks whose name contains partial.
func NameContains(partial string) Query { return Query{Type: QueryTypeNameContains, NameValue: partial} }

// NameIs matches tasks whose name equals exactly.
func NameIs(exact string) Query { return Query{Type: QueryTypeNameIs, NameValue: exact} }

// And matches tasks satisfying every sub-query.
func And(queries ...Query) Query { return Query{Type: QueryTypeCompound, Op: QueryAnd, Queries: queries} }

// Or matches tasks satisfying any sub-query.
func Or(queries ...Query) Query { return Query{Type: QueryTypeCompound, Op: QueryOr, Queries: queries} }

// Eval reports whether t satisfies q.
func (q Query) Eval(t Task) bool {
	switch q.Type {
	case QueryTypeAll:
		return true
	case QueryTypeID:
		return q.ID == t.ID
	case QueryTypeDone:
		return q.Done == t.Complete
	case QueryTypeNameContains:
		return strings.Contains(t.Name, q.NameValue)
	case QueryTypeNameIs:
		return q.NameValue == t.Name
	case QueryTypeCompound:
		switch q.Op {
		case QueryAnd:
			for _, sub := range q.Queries {
				if !sub.Eval(t) {
					return false
				}
			}
			return true
		case QueryOr:
			for _, sub := range q.Queries {
				if sub.Eval(t) {
					return true
				}
			}
			return false
		}
	}
	return false
}

// Store holds the single in-memory task table (spec 3's ownership model:
// owned solely by the router island that wraps it, no external locking).
type Store struct {
	tasks map[string]Task
}

// NewStore returns an empty task store.
func NewStore() *Store {
	return &Store{tasks: make(map[string]Task)}
}

// Create adds a new task named name and returns it.
func (s *Store) Create(name string) Task {
	t := NewTask(name)
	s.tasks[t.ID] = t
	return t
}

// Complete marks taskID done. ok is true only if taskID existed and was
// not already complete; otherwise errDescription names why, mirroring the
// original's Complete handler (spec 8 scenario 6).
func (s *Store) Complete(taskID string) (errDescription string, ok bool) {
	t, found := s.tasks[taskID]
	if !found {
		return "Task Not Found", false
	}
	if t.Complete {
		return "Task Already Complete", false
	}
	t.Complete = true
	s.tasks[taskID] = t
	return "", true
}

// GetOne returns the first task matching q, if any.
func (s *Store) GetOne(q Query) (Task, bool) {
	for _, t := range s.tasks {
		if q.Eval(t) {
			return t, true
		}
	}
	return Task{}, false
}

// Get returns every task matching q.
func (s *Store) Get(q Query) []Task {
	var out []Task
	for _, t := range s.tasks {
		if q.Eval(t) {
			out = append(out, t)
		}
	}
	return out
}
