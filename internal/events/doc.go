// Package events defines the domain events produced by task mutations
// and the bus contract used to deliver them to decoupled subscribers.
//
// Events are buffered on the mutated entity and published by the owning
// workflow only after the new state has been persisted, so subscribers
// never observe a change that failed to commit.
package events
