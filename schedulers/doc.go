// Package schedulers provides concrete [dsk.Scheduler] implementations: an
// inline scheduler, fixed- and dynamic-capacity worker pools, and a strand
// (single-goroutine, strictly serialized dispatch queue).
//
// The pooled schedulers are grounded on the teacher's workers.go dispatch
// loop and worker.go's per-task panic recovery, generalized from running
// typed tasks to running [dsk.Continuation] values. The shutdown sequencing
// in lifecycle.go generalizes the teacher's lifecycleCoordinator.
package schedulers
