// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit events without knowing which handlers will process them. The
// assessment service publishes an event when a sample is ingested and when an
// assessment completes; outer layers (notification, presentation) subscribe by
// registering an EventHandler.
//
// The primary components are:
// - Event: a typed, JSON-encoded notification
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
