// Package events provides types and interfaces for publishing student
// lifecycle transitions.
//
// The generator emits one Event per student per simulated year. Handlers
// registered on an EventEmitter observe those transitions (for counting,
// logging or downstream export) without the generator depending on them.
package events
