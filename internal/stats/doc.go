// Package stats implements the statistical outcome synthesis engine used to
// fabricate assessment results for a simulated student population.
//
// The package is pure computation: it holds no global state and never logs.
// Every operation that draws random numbers takes a caller-owned Rand so runs
// can be reproduced under a fixed seed.
package stats
