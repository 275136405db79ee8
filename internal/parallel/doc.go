// Package parallel runs independent jobs with bounded concurrency.
//
// A WorkerPool starts one goroutine per submitted job and lets at most
// maxWorkers of them run at once. With failFast the pool's context is
// cancelled on the first error, so queued jobs never start and running
// ones see ctx.Done().
package parallel
