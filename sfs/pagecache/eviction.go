package pagecache

// FrameID identifies a slot within a Cache's fixed-size frame array.
type FrameID uint

// Eviction elects which cached frame to reclaim when the cache is full.
type Eviction interface {
	// Victim elects a frame to evict, removing it from eviction bookkeeping.
	// Returns nil if there is nothing to evict.
	Victim() *FrameID
	// Remove drops a frame from eviction bookkeeping without evicting it.
	Remove(FrameID)
	// Add makes a frame eligible for eviction.
	Add(FrameID)
}
