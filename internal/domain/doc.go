// Package domain contains the entities of the simulated education system:
// the state/district/school hierarchy, students and their yearly lifecycle
// state, assessments and the outcome records synthesized for them.
//
// Statistical value types (capability, cut points, scores) come from the
// stats package; this package composes them into entities and enforces
// which fields may change and how.
package domain
