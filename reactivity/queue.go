package reactivity

import (
	"fmt"
	"time"
)

func (rs *ReactiveSystem) queueJob(job func()) {
	rs.jobs = append(rs.jobs, job)
}

// NextTick queues fn to run on the next Flush.
func (rs *ReactiveSystem) NextTick(fn func()) {
	rs.queueJob(fn)
}

// Pending reports how many deferred jobs are waiting.
func (rs *ReactiveSystem) Pending() int {
	return len(rs.jobs)
}

// Flush runs deferred jobs in FIFO order, including jobs queued while
// draining, and returns how many ran. A nested call returns 0 immediately.
func (rs *ReactiveSystem) Flush() int {
	if rs.flushing || len(rs.jobs) == 0 {
		return 0
	}
	rs.checkGoroutine()

	rs.flushing = true
	defer func() {
		rs.flushing = false
	}()

	ev := FlushEvent{Start: time.Now()}
	for len(rs.jobs) > 0 {
		job := rs.jobs[0]
		rs.jobs[0] = nil
		rs.jobs = rs.jobs[1:]
		ev.Jobs++
		if err := rs.runJob(job); err != nil {
			ev.Errors++
			rs.logger.Debug("deferred job panicked", "error", err)
			rs.onError(err)
		}
	}
	ev.End = time.Now()

	rs.logger.Debug("flushed deferred jobs", "jobs", ev.Jobs, "errors", ev.Errors, "took", ev.End.Sub(ev.Start))
	if rs.hooks != nil {
		rs.hooks.OnFlush(ev)
	}
	return ev.Jobs
}

func (rs *ReactiveSystem) runJob(job func()) (err error) {
	if rs.onError == nil {
		job()
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()
	job()
	return nil
}

// Task runs fn and then drains the jobs it queued, the way a host event loop
// runs microtasks after each task.
func (rs *ReactiveSystem) Task(fn func()) {
	fn()
	rs.Flush()
}
