// Package store defines the persistence interfaces the workflows depend
// on, together with the sentinel errors implementations must return and
// helpers for transactional execution.
//
// Concrete implementations live under internal/platform (currently
// PostgreSQL). Services depend only on the interfaces here and accept
// whatever consistency the store provides for concurrent updates to the
// same row; the core itself takes no locks.
package store
