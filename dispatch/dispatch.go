// Package dispatch declares the seam a future key-value/queue binding
// would implement to hand tasklists to workers (spec.md §6). Network
// bindings for that backend are explicitly out of scope (spec.md §1); no
// concrete Store exists in this module. Callers of board and optimizer
// compose their own Store implementation against whatever backend they
// run (Redis, an in-memory map, a message bus) and push the results
// board.GetTasklists/optimizer.Solve return through it.
package dispatch

// Store is the opaque key-value/queue interface spec.md §6 names:
// {push(key, value), pop(key), set(key, value), lrange, llen}. Keys are
// plain strings; values are the caller's choice of encoding (this module
// produces map[string]any via ToDict, ready for JSON encoding before a
// Push/Set call).
//
// Worker dispatch keys (spec.md §6), by convention a caller adopting this
// seam would use: "workers:{name}" for a worker's capabilities, and
// "workers:{name}:pending" for its pending tasklist.
type Store interface {
	// Push appends value to the list stored at key.
	Push(key string, value any) error

	// Pop removes and returns the front of the list stored at key. ok is
	// false when key's list is empty or key is unset.
	Pop(key string) (value any, ok bool, err error)

	// Set stores value at key, replacing key's current value if any.
	Set(key string, value any) error

	// LRange returns a slice of the list stored at key, from index start
	// up to (exclusive) stop. Negative indices count from the list's end,
	// matching the original source's Redis-backed semantics.
	LRange(key string, start, stop int) ([]any, error)

	// LLen returns the length of the list stored at key, or zero if key
	// is unset.
	LLen(key string) (int, error)
}
