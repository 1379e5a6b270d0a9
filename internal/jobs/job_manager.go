package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops every background job of the service.
type JobManager struct {
	jobs  []namedJob
	start []namedJob
}

type namedJob struct {
	name string
	job  Job
}

func NewJobManager(outboxRelay *OutboxRelayJob) *JobManager {
	jm := &JobManager{}
	if outboxRelay != nil {
		jm.jobs = append(jm.jobs, namedJob{name: "outbox relay", job: outboxRelay})
	}
	return jm
}

// Add registers another job. It must be called before StartAll.
func (jm *JobManager) Add(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts the jobs in registration order. If one fails, the ones
// already started are stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.start = append(jm.start, j)
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.start) - 1; i >= 0; i-- {
		jm.start[i].job.Stop()
	}
	jm.start = nil
}
