// Package iocache persists layouts and layout runs in SQL databases.
package iocache

import (
	"sync"

	"github.com/huangsam/timelane/internal/contract"
)

// CacheStoreManager manages the layout cache and the run store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	layout       contract.CacheStore
	runs         contract.RunStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetLayoutStore returns the layout CacheStore.
func (mgr *CacheStoreManager) GetLayoutStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.layout
}

// GetRunStore returns the RunStore, or nil when run tracking is off.
func (mgr *CacheStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
