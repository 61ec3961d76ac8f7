package dataview

import (
	"errors"
	"strconv"
)

// ErrDuplicateRowKey is returned by Add when the key is already stored.
var ErrDuplicateRowKey = errors.New("dataview: duplicate row key")

// RowStore holds the full, unfiltered and ordered sequence of records.
// It is not safe for concurrent use; a Session serializes access.
type RowStore struct {
	rows []Record
	keys map[string]struct{}
	next int
}

// NewRowStore builds a store populated with records.
func NewRowStore(records ...Record) *RowStore {
	s := &RowStore{}
	s.Load(records)
	return s
}

// Load replaces every row. Records without a key get their insertion position;
// later records repeating a key are dropped. It returns the number of rows kept.
func (s *RowStore) Load(records []Record) int {
	s.rows = make([]Record, 0, len(records))
	s.keys = make(map[string]struct{}, len(records))
	s.next = 0
	for _, rec := range records {
		_, _ = s.insert(rec)
	}
	return len(s.rows)
}

// Add appends a record at the end of the store.
func (s *RowStore) Add(rec Record) (Record, error) {
	if s.keys == nil {
		s.keys = map[string]struct{}{}
	}
	return s.insert(rec)
}

func (s *RowStore) insert(rec Record) (Record, error) {
	s.next++
	if rec.Key == "" {
		rec.Key = strconv.Itoa(s.next)
		for s.has(rec.Key) {
			s.next++
			rec.Key = strconv.Itoa(s.next)
		}
	}
	if s.has(rec.Key) {
		return Record{}, ErrDuplicateRowKey
	}
	rec = rec.clone()
	s.rows = append(s.rows, rec)
	s.keys[rec.Key] = struct{}{}
	return rec.clone(), nil
}

// Remove deletes the row with key. Unknown keys are ignored.
func (s *RowStore) Remove(key string) bool {
	if !s.has(key) {
		return false
	}
	for i, rec := range s.rows {
		if rec.Key == key {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			break
		}
	}
	delete(s.keys, key)
	return true
}

// Get returns the row stored under key.
func (s *RowStore) Get(key string) (Record, bool) {
	if !s.has(key) {
		return Record{}, false
	}
	for _, rec := range s.rows {
		if rec.Key == key {
			return rec.clone(), true
		}
	}
	return Record{}, false
}

// All returns a copy of every row in store order.
func (s *RowStore) All() []Record {
	out := make([]Record, len(s.rows))
	for i, rec := range s.rows {
		out[i] = rec.clone()
	}
	return out
}

// Len reports the number of stored rows.
func (s *RowStore) Len() int {
	return len(s.rows)
}

func (s *RowStore) has(key string) bool {
	_, ok := s.keys[key]
	return ok
}
