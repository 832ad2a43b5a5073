package engine

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/simon/constant"
	"github.com/lixenwraith/simon/core"
	"github.com/lixenwraith/simon/status"
)

const tracerName = "github.com/lixenwraith/simon/engine"

// PlaybackResult is the outcome of one playback run
type PlaybackResult int

const (
	PlaybackSucceeded PlaybackResult = iota
	PlaybackAborted
)

func (r PlaybackResult) String() string {
	if r == PlaybackSucceeded {
		return "success"
	}
	return "aborted"
}

// PlaybackController reveals a sequence one signal at a time on the game clock
// There is no cancellation handle: a run re-reads the live token before every step
// and aborts once it is stale, letting an already started step finish
type PlaybackController struct {
	clock     Clock
	emitter   func() ToneEmitter
	highlight func(core.Signal, bool)
	live      func() PlaybackToken
	tracer    trace.Tracer

	statRuns    *atomic.Int64
	statAborted *atomic.Int64
}

// NewPlaybackController wires a controller to the live game
// emitter is read per step since the game swaps emitters on reset
func NewPlaybackController(
	clock Clock,
	emitter func() ToneEmitter,
	highlight func(core.Signal, bool),
	live func() PlaybackToken,
	reg *status.Registry,
) *PlaybackController {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &PlaybackController{
		clock:       clock,
		emitter:     emitter,
		highlight:   highlight,
		live:        live,
		tracer:      otel.Tracer(tracerName),
		statRuns:    reg.Ints.Get("playback.runs"),
		statAborted: reg.Ints.Get("playback.aborted"),
	}
}

type playbackRun struct {
	pc      *PlaybackController
	signals core.Sequence
	pace    Pace
	token   PlaybackToken
	done    func(PlaybackResult)
	span    trace.Span
}

// Play reveals signals at pace and reports the outcome through done, on the clock's thread
// An empty sequence succeeds immediately; done is never called more than once
func (pc *PlaybackController) Play(signals core.Sequence, pace Pace, token PlaybackToken, done func(PlaybackResult)) {
	pc.statRuns.Add(1)

	_, span := pc.tracer.Start(context.Background(), "playback",
		trace.WithAttributes(
			attribute.Int("round", token.Round),
			attribute.Int64("epoch", int64(token.Epoch)),
			attribute.Int("length", len(signals)),
			attribute.Float64("pace", pace.Seconds()),
			attribute.String("sequence", signals.String()),
		),
	)

	run := &playbackRun{
		pc:      pc,
		signals: signals,
		pace:    pace,
		token:   token,
		done:    done,
		span:    span,
	}

	if len(signals) == 0 {
		run.finish(PlaybackSucceeded, 0)
		return
	}
	run.step(0)
}

// step plays signals[i], then schedules the hold release and the gap before i+1
func (r *playbackRun) step(i int) {
	if r.token.Stale(r.pc.live(), len(r.signals)) {
		r.finish(PlaybackAborted, i)
		return
	}
	if i == len(r.signals) {
		r.finish(PlaybackSucceeded, i)
		return
	}

	s := r.signals[i]
	r.pc.highlight(s, true)
	stop := r.pc.emitter().Play(s.Frequency())
	r.span.AddEvent("signal", trace.WithAttributes(attribute.Int("index", i), attribute.String("signal", s.String())))

	r.pc.clock.AfterFunc(r.pace.Hold(), func() {
		r.pc.highlight(s, false)
		stop()
		r.pc.clock.AfterFunc(constant.PlaybackGap, func() {
			r.step(i + 1)
		})
	})
}

func (r *playbackRun) finish(res PlaybackResult, steps int) {
	if res == PlaybackAborted {
		r.pc.statAborted.Add(1)
	}
	r.span.SetAttributes(attribute.String("result", res.String()), attribute.Int("steps", steps))
	r.span.End()

	if r.done != nil {
		r.done(res)
	}
}
