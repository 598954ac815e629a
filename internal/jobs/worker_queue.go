package jobs

import (
	"github.com/vytor/chessdrill/internal/drill"
	"github.com/vytor/chessdrill/internal/drillapi"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool    *worker.Pool
	client  drillapi.ClientInterface
	results chan drill.Result
}

// NewWorkerQueue creates a new WorkerQueue implementation. Results are
// buffered up to bufferSize; workers wait for the reader beyond that.
func NewWorkerQueue(pool *worker.Pool, client drillapi.ClientInterface, bufferSize int) *WorkerQueue {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	return &WorkerQueue{
		pool:    pool,
		client:  client,
		results: make(chan drill.Result, bufferSize),
	}
}

func (q *WorkerQueue) Results() <-chan drill.Result {
	return q.results
}

func (q *WorkerQueue) EnqueueStart(req drill.StartRequest) error {
	return q.pool.Submit(&worker.StartSessionJob{
		Client:  q.client,
		Request: req,
		Results: q.results,
	})
}

func (q *WorkerQueue) EnqueueCheck(sub models.AnswerSubmission, seq uint64) error {
	return q.pool.Submit(&worker.CheckAnswerJob{
		Client:     q.client,
		Submission: sub,
		Seq:        seq,
		Results:    q.results,
	})
}

func (q *WorkerQueue) EnqueueEnd(sessionID string) error {
	return q.pool.Submit(&worker.EndSessionJob{
		Client:    q.client,
		SessionID: sessionID,
		Results:   q.results,
	})
}

var _ JobQueue = (*WorkerQueue)(nil)
