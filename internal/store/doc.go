// Package store defines interfaces for sample persistence operations.
// These interfaces keep the assessment service independent of where samples
// live; the engine itself is storage-agnostic.
package store
