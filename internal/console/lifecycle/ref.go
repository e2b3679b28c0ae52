// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lifecycle

import (
	"sync"

	"github.com/joycdecor/joycdecor/internal/core/catalog"
)

// Ref identifies a local entry: either a not-yet-confirmed create or a
// record the repository has accepted.
type Ref interface {
	isRef()
}

// PendingRef is an optimistic entry awaiting the repository's answer.
type PendingRef struct {
	TempID string
}

// PersistedRef is an entry carrying the repository's identifier.
type PersistedRef struct {
	ID string
}

func (PendingRef) isRef()   {}
func (PersistedRef) isRef() {}

// Entry is one row of the local list.
type Entry struct {
	Ref  Ref
	Item catalog.Item
}

// IsPending reports whether the entry is an unconfirmed create.
func (entry Entry) IsPending() bool {
	_, pending := entry.Ref.(PendingRef)
	return pending
}

// List is the local, most-recent-first view of the catalog.
//
// Completions of concurrent operations update it by [Ref], never by position,
// so a create finishing while another item is being deleted cannot clobber
// the wrong row.
type List struct {
	mu      sync.Mutex
	entries []Entry
}

// Entries returns a copy of the current rows.
func (list *List) Entries() []Entry {
	list.mu.Lock()
	defer list.mu.Unlock()
	return append([]Entry(nil), list.entries...)
}

// Find returns the row for ref.
func (list *List) Find(ref Ref) (Entry, bool) {
	list.mu.Lock()
	defer list.mu.Unlock()
	if index := list.indexOf(ref); index >= 0 {
		return list.entries[index], true
	}
	return Entry{}, false
}

// Len reports the number of rows.
func (list *List) Len() int {
	list.mu.Lock()
	defer list.mu.Unlock()
	return len(list.entries)
}

func (list *List) reset(items []*catalog.Item) {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{Ref: PersistedRef{ID: item.ID}, Item: *item})
	}

	list.mu.Lock()
	list.entries = entries
	list.mu.Unlock()
}

func (list *List) prepend(entry Entry) {
	list.mu.Lock()
	defer list.mu.Unlock()
	list.entries = append([]Entry{entry}, list.entries...)
}

// replace swaps the row for ref in place. It reports false if ref is gone.
func (list *List) replace(ref Ref, entry Entry) bool {
	list.mu.Lock()
	defer list.mu.Unlock()
	index := list.indexOf(ref)
	if index < 0 {
		return false
	}
	list.entries[index] = entry
	return true
}

func (list *List) remove(ref Ref) bool {
	list.mu.Lock()
	defer list.mu.Unlock()
	index := list.indexOf(ref)
	if index < 0 {
		return false
	}
	list.entries = append(list.entries[:index:index], list.entries[index+1:]...)
	return true
}

func (list *List) indexOf(ref Ref) int {
	for index, entry := range list.entries {
		if entry.Ref == ref {
			return index
		}
	}
	return -1
}
