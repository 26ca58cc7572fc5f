// Package task manages in-process job queuing and concurrent execution.
// The generator splits every simulated year into one task per school; the
// queue buffers those tasks and a worker pool executes them, reporting
// failures through an error handler without stopping the other workers.
package task
