package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

type JobFunc func(ctx context.Context)

type job struct {
	spec string
	fn   JobFunc
}

// Scheduler runs registered jobs on cron specs until the context is done.
type Scheduler struct {
	s    *gocron.Scheduler
	ctx  context.Context
	jobs []job
}

func New(ctx context.Context, loc *time.Location) *Scheduler {
	return &Scheduler{s: gocron.NewScheduler(loc), ctx: ctx}
}

func (sch *Scheduler) Add(spec string, fn JobFunc) {
	sch.jobs = append(sch.jobs, job{spec: spec, fn: fn})
}

// Start schedules all registered jobs and blocks until the context is
// cancelled. A job firing after cancellation is not run.
func (sch *Scheduler) Start() {
	for _, j := range sch.jobs {
		sch.s.Cron(j.spec).Do(func(fn JobFunc) {
			select {
			case <-sch.ctx.Done():
				return
			default:
				fn(sch.ctx)
			}
		}, j.fn)
	}
	sch.s.StartAsync()

	<-sch.ctx.Done()
	sch.s.Stop()
}
