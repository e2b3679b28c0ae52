// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rotation

import (
	"sync"

	"github.com/joycdecor/joycdecor/internal/core/catalog"
)

// Registry owns the Rotators of one rendered list, keyed by item id.
//
// Unmounting an item, or closing the Registry when the view goes away,
// cancels its timers and releases its video binding.
type Registry struct {
	mu       sync.Mutex
	options  Options
	rotators map[string]*Rotator

	// OnItemChange, when set before mounting, receives every item's
	// snapshots tagged with the item id. Options.OnChange still fires.
	OnItemChange func(itemID string, snapshot Snapshot)
}

// NewRegistry creates an empty registry whose Rotators share options.
func NewRegistry(options Options) *Registry {
	return &Registry{options: options, rotators: make(map[string]*Rotator)}
}

// Mount creates and starts the Rotator for an item, replacing (and closing)
// any previous one for the same id. player may be nil for image-only items.
func (registry *Registry) Mount(item *catalog.Item, player Player) *Rotator {
	options := registry.options
	if registry.OnItemChange != nil {
		shared, itemID, notify := options.OnChange, item.ID, registry.OnItemChange
		options.OnChange = func(snapshot Snapshot) {
			if shared != nil {
				shared(snapshot)
			}
			notify(itemID, snapshot)
		}
	}
	rotator := New(item.Timeline(options.Variant.Ordering()), player, options)

	registry.mu.Lock()
	previous := registry.rotators[item.ID]
	registry.rotators[item.ID] = rotator
	registry.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	rotator.Start()
	return rotator
}

// Get returns the mounted Rotator for an item id.
func (registry *Registry) Get(id string) (*Rotator, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	rotator, ok := registry.rotators[id]
	return rotator, ok
}

// Unmount closes and forgets the Rotator for an item id.
func (registry *Registry) Unmount(id string) {
	registry.mu.Lock()
	rotator, ok := registry.rotators[id]
	delete(registry.rotators, id)
	registry.mu.Unlock()

	if ok {
		rotator.Close()
	}
}

// Len reports how many items are mounted.
func (registry *Registry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.rotators)
}

// Close unmounts everything.
func (registry *Registry) Close() {
	registry.mu.Lock()
	rotators := registry.rotators
	registry.rotators = make(map[string]*Rotator)
	registry.mu.Unlock()

	for _, rotator := range rotators {
		rotator.Close()
	}
}
