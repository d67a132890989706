package tasks

import (
	"context"
	"log"
	"time"
)

// Scheduler triggers each registered job on its own cadence. One goroutine
// per job means a job can never overlap itself; different jobs may run
// concurrently. Failures surface through the retry policy and are logged
// with the job name once the policy is exhausted.
type Scheduler struct {
	retry RetryPolicy
	jobs  []scheduledJob
}

type scheduledJob struct {
	name  string
	every time.Duration
	run   func() error
}

func NewScheduler(retry RetryPolicy) *Scheduler {
	return &Scheduler{retry: retry}
}

// Add registers a job under a name with its interval.
func (s *Scheduler) Add(name string, every time.Duration, run func() error) {
	s.jobs = append(s.jobs, scheduledJob{name: name, every: every, run: run})
}

// Start launches the job loops and returns; they stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		go s.loop(ctx, job)
	}
}

func (s *Scheduler) loop(ctx context.Context, job scheduledJob) {
	ticker := time.NewTicker(job.every)
	defer ticker.Stop()

	log.Printf("job %s scheduled every %s", job.name, job.every)
	for {
		select {
		case <-ctx.Done():
			log.Printf("job %s stopped", job.name)
			return
		case <-ticker.C:
			start := time.Now()
			if err := s.retry.Run(job.name, job.run); err != nil {
				log.Printf("job failed: %v", err)
				continue
			}
			log.Printf("job %s finished in %s", job.name, time.Since(start).Round(time.Millisecond))
		}
	}
}
