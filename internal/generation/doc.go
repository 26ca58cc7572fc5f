// Package generation drives a multi-year simulation of a student population
// and synthesizes the assessment outcomes each student produces.
//
// A Runner builds the state/district/school hierarchy, seeds the initial
// population, and then for every simulated year fans per-school outcome
// synthesis out to a worker pool before applying the lifecycle transition to
// every student. Finished outcomes are handed to an OutcomeSink.
package generation
