package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vytor/chessdrill/internal/board"
	"github.com/vytor/chessdrill/internal/config"
	"github.com/vytor/chessdrill/internal/drill"
	"github.com/vytor/chessdrill/internal/drillapi"
	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/heatmap"
	"github.com/vytor/chessdrill/internal/jobs"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/stopwatch"
	"github.com/vytor/chessdrill/internal/worker"
)

// AppContext owns every client-side component. All of its methods run on the
// event loop goroutine.
type AppContext struct {
	cfg     config.Config
	out     io.Writer
	board   *board.Board
	watch   *stopwatch.Stopwatch
	surface *terminalSurface
	client  drillapi.ClientInterface
	pool    *worker.Pool
	queue   jobs.JobQueue
	session *drill.Session
	log     *logger.Logger

	pendingFile string
	unsubscribe func()
}

func NewAppContext(cfg config.Config, client drillapi.ClientInterface, out io.Writer) *AppContext {
	b := board.New(board.ParseOrientation(cfg.Perspective))
	watch := stopwatch.New()
	surface := &terminalSurface{out: out}
	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	queue := jobs.NewWorkerQueue(pool, client, cfg.QueueSize)

	app := &AppContext{
		cfg:     cfg,
		out:     out,
		board:   b,
		watch:   watch,
		surface: surface,
		client:  client,
		pool:    pool,
		queue:   queue,
		log:     logger.Default().WithPrefix("app"),
	}
	app.session = drill.NewSession(drill.Config{
		DrillType:   models.DrillType(cfg.DrillType),
		InputMethod: models.InputMethod(cfg.InputMethod),
		Perspective: cfg.Perspective,
	}, b, surface, queue, watch)
	app.unsubscribe = b.Subscribe(app.onSquareSelected)
	return app
}

// Start launches the request workers.
func (a *AppContext) Start(ctx context.Context) {
	a.pool.Start(ctx)
}

func (a *AppContext) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.pool.Stop()
}

// Run reads commands from in and request results from the queue until quit,
// end of input or cancellation.
func (a *AppContext) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(a.out, "Type 'help' for commands, 'start' to begin.")
	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-a.queue.Results():
			a.dispatch(r)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := a.Handle(ctx, line)
			if err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// dispatch applies a request result to the session and redraws.
func (a *AppContext) dispatch(r drill.Result) {
	before := a.session.State()
	if err := a.session.Dispatch(r); err != nil {
		if errors.HasCode(err, errors.ErrCodeNetworkFailure) {
			fmt.Fprintf(a.out, "network error: %v\n", err)
			return
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if r.Kind == drill.ResultStart && before == drill.AwaitingQuestion {
		a.surface.endEnabled = true
	}
	if a.session.State() == drill.QuestionActive && r.Kind != drill.ResultEnd {
		a.showQuestion()
	}
}

func (a *AppContext) showQuestion() {
	q, ok := a.session.Question()
	if !ok {
		return
	}
	if err := a.board.Render(a.out); err != nil {
		a.log.Warn("failed to render board: %v", err)
	}
	fmt.Fprintf(a.out, "[%s] %s\n", q.Type, q.Prompt)
}

// onSquareSelected drops a half-entered file/rank answer when the board is
// clicked.
func (a *AppContext) onSquareSelected(sq geometry.Square) {
	a.log.Debug("square %s selected", sq)
	a.pendingFile = ""
}

// Handle runs one command line. It reports whether the loop should stop.
func (a *AppContext) Handle(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		a.printHelp()
	case "start":
		if len(args) > 0 {
			if err := a.session.SetDrillType(models.DrillType(args[0])); err != nil {
				return false, err
			}
		}
		return false, a.session.Start(ctx, "", "")
	case "click":
		if len(args) != 1 {
			return false, errors.NewBadRequestError("usage: click <square>")
		}
		return false, a.click(args[0])
	case "file":
		if len(args) != 1 || len(args[0]) != 1 || args[0][0] < 'a' || args[0][0] > 'h' {
			return false, errors.NewBadRequestError("usage: file <a-h>")
		}
		a.pendingFile = args[0]
		fmt.Fprintf(a.out, "file %s\n", a.pendingFile)
	case "rank":
		if len(args) != 1 || len(args[0]) != 1 || args[0][0] < '1' || args[0][0] > '8' {
			return false, errors.NewBadRequestError("usage: rank <1-8>")
		}
		if a.pendingFile == "" {
			return false, errors.NewBadRequestError("choose a file first")
		}
		answer := a.pendingFile + args[0]
		a.pendingFile = ""
		return false, a.session.SubmitAnswer(answer)
	case "answer", "a":
		if len(args) == 0 {
			return false, errors.NewBadRequestError("usage: answer <text>")
		}
		return false, a.session.SubmitAnswer(strings.Join(args, " "))
	case "end":
		if !a.surface.endEnabled {
			fmt.Fprintln(a.out, "no session in progress")
			return false, nil
		}
		return false, a.session.RequestEnd()
	case "reset":
		a.session.ResetStats()
	case "stats":
		return false, a.printStats(ctx)
	case "flip":
		a.board.Flip()
		return false, a.board.Render(a.out)
	case "coords":
		on := a.board.ToggleCoordinates()
		fmt.Fprintf(a.out, "coordinates %s\n", map[bool]string{true: "on", false: "off"}[on])
		return false, a.board.Render(a.out)
	case "orient":
		if len(args) != 1 || (args[0] != string(board.White) && args[0] != string(board.Black)) {
			return false, errors.NewBadRequestError("usage: orient <white|black>")
		}
		a.board.SetOrientation(board.ParseOrientation(args[0]))
		return false, a.board.Render(a.out)
	case "board":
		return false, a.board.Render(a.out)
	case "legal":
		if len(args) != 1 {
			return false, errors.NewBadRequestError("usage: legal <square>")
		}
		return false, a.printLegalMoves(ctx, args[0])
	case "heatmap":
		drillType := a.session.DrillType()
		if len(args) > 0 {
			drillType = models.DrillType(args[0])
		}
		return false, a.printHeatmap(ctx, drillType)
	default:
		return false, errors.NewBadRequestError(fmt.Sprintf("unknown command %q", cmd))
	}
	return false, nil
}

func (a *AppContext) click(name string) error {
	sq, err := geometry.ParseSquare(strings.ToLower(name))
	if err != nil {
		return errors.NewValidationError("square", err.Error())
	}
	a.board.Select(sq)
	if ev := a.session.LastClick(); ev != nil && ev.Square == sq {
		fmt.Fprintf(a.out, "%s %s: candidate=%v legal=%v\n", ev.Piece, sq, ev.Candidate, ev.Legal)
	}
	return nil
}

func (a *AppContext) printStats(ctx context.Context) error {
	a.surface.ShowStats(a.session.Stats())

	ctx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()
	overall, err := a.client.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "all time: %d sessions, %d attempts, %.1f%% accuracy, avg %dms, best streak %d\n",
		overall.TotalSessions, overall.TotalAttempts, overall.OverallAccuracy, overall.AvgResponseMs, overall.BestStreak)
	for _, ds := range overall.DrillStats {
		fmt.Fprintf(a.out, "  %-15s %4d attempts  %5.1f%%  avg %dms  best streak %d\n",
			ds.DrillType, ds.TotalAttempts, ds.Accuracy, ds.AvgResponseMs, ds.BestStreak)
	}
	return nil
}

func (a *AppContext) printHeatmap(ctx context.Context, drillType models.DrillType) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()
	data, err := a.client.Heatmap(ctx, drillType)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "accuracy by square (%s)\n", drillType)
	return heatmap.Render(a.out, *data, heatmap.Options{
		Orientation: a.board.Orientation(),
		ANSI:        a.cfg.HeatmapANSI,
	})
}

// printLegalMoves asks the server for the legal destinations of the piece on
// square, in the current question's position when there is one.
func (a *AppContext) printLegalMoves(ctx context.Context, square string) error {
	fen := a.board.FEN()
	if q, ok := a.session.Question(); ok && q.FEN != "" {
		fen = q.FEN
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()
	res, err := a.client.LegalMoves(ctx, fen, strings.ToLower(square))
	if err != nil {
		return err
	}
	if len(res.Moves) == 0 {
		fmt.Fprintf(a.out, "%s: no legal moves\n", res.Square)
		return nil
	}
	fmt.Fprintf(a.out, "%s: %s\n", res.Square, strings.Join(res.Moves, " "))
	return nil
}

func (a *AppContext) printHelp() {
	fmt.Fprint(a.out, `commands:
  start [drill]      begin a session (name_square, find_square, piece_movement, move_notation)
  answer <text>      type an answer
  click <square>     click a board square
  file <a-h>         choose a file button, then
  rank <1-8>         choose a rank button to answer
  end                finish the session
  stats              show session and all-time stats
  reset              reset session stats
  heatmap [drill]    show accuracy by square
  flip | coords      flip the board or toggle coordinates
  orient <side>      show the board from white or black
  legal <square>     list legal moves of the piece on a square
  board              redraw the board
  quit
`)
}
