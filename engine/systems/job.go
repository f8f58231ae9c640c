package systems

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lizual/lizual/engine/containers"
	"github.com/lizual/lizual/engine/core"
)

/** @brief Describes a job to be run. */
type JobTask struct {
	ID uuid.UUID
	/** @brief Shows up in logs when the job fails. */
	Name string
	/** @brief Data to be passed to the entry point upon execution. */
	InputParams interface{}
	/** @brief Runs on a worker. Required. */
	OnStart func(params interface{}) (interface{}, error)
	/** @brief Runs on the main thread during Update with the result of OnStart. Optional. */
	OnComplete func(result interface{})
	/** @brief Runs on the main thread during Update with the error of OnStart. Optional. */
	OnFailure func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	results    *containers.RingQueue[func()]
	wg         sync.WaitGroup

	mu       sync.RWMutex
	closed   bool
	stopping atomic.Bool
}

var (
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
	ErrJobSystemClosed     = errors.New("job system already shut down")
	ErrInvalidJob          = errors.New("job has no entry point")
)

// The max number of job results that can wait for the main thread at once.
const MAX_JOB_RESULTS int = 512

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
		results:    containers.NewRingQueue[func()](MAX_JOB_RESULTS),
	}
	js.start()
	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	result, err := job.OnStart(job.InputParams)
	if err != nil {
		core.LogError("job %s (%s) failed: %s", job.Name, job.ID, err)
		if job.OnFailure != nil {
			js.pushResult(func() { job.OnFailure(err) })
		}
		return
	}
	if job.OnComplete != nil {
		js.pushResult(func() { job.OnComplete(result) })
	}
}

func (js *JobSystem) pushResult(fn func()) {
	for {
		err := js.results.Enqueue(fn)
		if err == nil {
			return
		}
		// The main thread is behind; wait for it to drain rather than drop a result.
		core.LogWarn("job result queue full, waiting for the main thread")
		if js.stopping.Load() {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

/**
 * @brief Shuts the job system down. Jobs already submitted are finished,
 * their results are discarded.
 */
func (js *JobSystem) Shutdown() error {
	js.stopping.Store(true)
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	js.results.Drain()
	return nil
}

/**
 * @brief Updates the job system. Should happen once an update cycle, on the
 * thread that owns the GL context. Returns the number of results dispatched.
 */
func (js *JobSystem) Update() int {
	results := js.results.Drain()
	for _, fn := range results {
		fn()
	}
	return len(results)
}

/**
 * @brief Submits the provided job to be queued for execution.
 * Blocks while the queue is full.
 */
func (js *JobSystem) Submit(jt JobTask) (uuid.UUID, error) {
	if jt.OnStart == nil {
		return uuid.Nil, ErrInvalidJob
	}
	if jt.ID == uuid.Nil {
		jt.ID = uuid.New()
	}

	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return uuid.Nil, ErrJobSystemClosed
	}
	js.jobQueue <- jt
	return jt.ID, nil
}
