package worker

import (
	"context"

	"github.com/vytor/chessdrill/internal/drill"
	"github.com/vytor/chessdrill/internal/drillapi"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
)

// deliver hands r to the event loop unless the pool is shutting down.
func deliver(ctx context.Context, results chan<- drill.Result, r drill.Result) {
	select {
	case results <- r:
	case <-ctx.Done():
		logger.FromContext(ctx).Debug("dropping %s result: %v", r.Kind, ctx.Err())
	}
}

// StartSessionJob asks the server for a new drill session.
type StartSessionJob struct {
	Client  drillapi.ClientInterface
	Request drill.StartRequest
	Results chan<- drill.Result
}

func (j *StartSessionJob) Name() string { return "start_session" }

func (j *StartSessionJob) Run(ctx context.Context) error {
	res, err := j.Client.StartSession(ctx, j.Request.DrillType, j.Request.InputMethod, j.Request.Perspective)
	r := drill.Result{Kind: drill.ResultStart, Start: res, Err: err}
	if res != nil {
		r.SessionID = res.SessionID
	}
	deliver(ctx, j.Results, r)
	return err
}

// CheckAnswerJob submits one answer. Seq is the question sequence captured at
// submission time.
type CheckAnswerJob struct {
	Client     drillapi.ClientInterface
	Submission models.AnswerSubmission
	Seq        uint64
	Results    chan<- drill.Result
}

func (j *CheckAnswerJob) Name() string { return "check_answer" }

func (j *CheckAnswerJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"session_id": j.Submission.SessionID,
		"target":     j.Submission.Target,
	})
	res, err := j.Client.CheckAnswer(ctx, j.Submission)
	if err == nil {
		log.Debug("answer %q judged correct=%v", j.Submission.Answer, res.Correct)
	}
	deliver(ctx, j.Results, drill.Result{
		Kind:       drill.ResultCheck,
		SessionID:  j.Submission.SessionID,
		Seq:        j.Seq,
		ResponseMs: j.Submission.ResponseMs,
		Check:      res,
		Err:        err,
	})
	return err
}

// EndSessionJob closes a session on the server.
type EndSessionJob struct {
	Client    drillapi.ClientInterface
	SessionID string
	Results   chan<- drill.Result
}

func (j *EndSessionJob) Name() string { return "end_session" }

func (j *EndSessionJob) Run(ctx context.Context) error {
	sum, err := j.Client.EndSession(ctx, j.SessionID)
	deliver(ctx, j.Results, drill.Result{
		Kind:      drill.ResultEnd,
		SessionID: j.SessionID,
		Summary:   sum,
		Err:       err,
	})
	return err
}
