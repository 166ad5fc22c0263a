// Package terminal drives the portfolio terminal: it echoes submissions,
// resolves them through the command table and reveals the output into the
// transcript one tick at a time.
package terminal

import (
	"errors"
	"time"

	"termfolio/internal/command"
	"termfolio/internal/content"
	"termfolio/internal/logger"
	"termfolio/internal/transcript"
	"termfolio/internal/typewriter"
)

var log = logger.Named("terminal")

// ErrBusy is returned when a command is submitted while another is in flight.
var ErrBusy = errors.New("terminal: command already in flight")

// Source tells where a submission came from.
type Source int

const (
	// Typed submissions come from the input line.
	Typed Source = iota
	// Header submissions come from clicking the header bar.
	Header
)

func (s Source) String() string {
	if s == Header {
		return "header"
	}
	return "typed"
}

// Options configures a Session. Zero delays fall back to the defaults.
type Options struct {
	Prompt      string
	Portfolio   *content.Portfolio
	TypingDelay time.Duration
	ErrorDelay  time.Duration
	SubmitDelay time.Duration
	HeaderDelay time.Duration
}

const (
	DefaultTypingDelay = 10 * time.Millisecond
	DefaultErrorDelay  = 5 * time.Millisecond
	DefaultSubmitDelay = 300 * time.Millisecond
	DefaultHeaderDelay = 100 * time.Millisecond
)

type phase int

const (
	phaseIdle phase = iota
	phaseWaiting
	phaseRevealing
)

// Submission describes an accepted submission.
type Submission struct {
	Command command.Command
	// Delay is the pause before the first session tick.
	Delay time.Duration
	// Scheduled is false for empty input, which only echoes the prompt.
	Scheduled bool
}

// Session owns the transcript and the single in-flight command.
type Session struct {
	opts       Options
	transcript *transcript.Transcript

	phase   phase
	pending command.Command
	writer  *typewriter.Typewriter
	current command.Command
	started time.Time
	count   int
}

// New builds an idle session with an empty transcript.
func New(opts Options) *Session {
	if opts.Portfolio == nil {
		opts.Portfolio = content.Default()
	}
	if opts.TypingDelay <= 0 {
		opts.TypingDelay = DefaultTypingDelay
	}
	if opts.ErrorDelay <= 0 {
		opts.ErrorDelay = DefaultErrorDelay
	}
	if opts.SubmitDelay <= 0 {
		opts.SubmitDelay = DefaultSubmitDelay
	}
	if opts.HeaderDelay <= 0 {
		opts.HeaderDelay = DefaultHeaderDelay
	}
	return &Session{opts: opts, transcript: transcript.New()}
}

// Transcript exposes the transcript for rendering.
func (s *Session) Transcript() *transcript.Transcript { return s.transcript }

// Prompt is the prompt shown before the input line.
func (s *Session) Prompt() string { return s.opts.Prompt }

// Portfolio is the content the producers read from.
func (s *Session) Portfolio() *content.Portfolio { return s.opts.Portfolio }

// Busy reports whether a command is waiting for its start delay or revealing.
func (s *Session) Busy() bool { return s.phase != phaseIdle }

// Current is the command in flight, valid while Busy.
func (s *Session) Current() command.Command {
	if s.phase == phaseWaiting {
		return s.pending
	}
	return s.current
}

// Executed counts commands that have finished revealing, welcome included.
func (s *Session) Executed() int { return s.count }

// Boot seeds the welcome message. It returns the delay before the next tick
// and false when the session was already busy.
func (s *Session) Boot() (time.Duration, bool) {
	if s.Busy() {
		return 0, false
	}
	return s.run(command.Welcome())
}

// Submit echoes raw input and schedules the command it names. While another
// command is in flight the submission is rejected with ErrBusy and the
// transcript is left untouched.
func (s *Session) Submit(raw string, src Source) (Submission, error) {
	if s.Busy() {
		log.WithField("source", src.String()).Debug("submission rejected: busy")
		return Submission{}, ErrBusy
	}
	cmd := command.Parse(raw)
	s.transcript.Append(command.Echo(s.opts.Prompt, cmd.Token))
	if cmd.Token == "" {
		return Submission{Command: cmd}, nil
	}

	delay := s.opts.SubmitDelay
	if src == Header {
		delay = s.opts.HeaderDelay
	}
	s.phase = phaseWaiting
	s.pending = cmd
	s.started = time.Now()
	log.WithFields(logger.Fields{
		"command": cmd.Name(),
		"source":  src.String(),
	}).Info("command submitted")
	return Submission{Command: cmd, Delay: delay, Scheduled: true}, nil
}

// Tick advances the in-flight command by one step. It returns the delay
// before the next tick and whether another tick is needed.
func (s *Session) Tick() (time.Duration, bool) {
	switch s.phase {
	case phaseWaiting:
		cmd := s.pending
		s.pending = command.Command{}
		if cmd.Kind == command.KindClear {
			s.transcript.Clear()
			log.WithField("command", cmd.Name()).Info("transcript cleared")
			s.count++
			return s.run(command.Welcome())
		}
		return s.run(cmd)
	case phaseRevealing:
		unit, ok := s.writer.Step()
		if ok {
			s.transcript.AppendToLast(unit)
			return s.writer.Delay(), true
		}
		s.finish()
		return 0, false
	default:
		return 0, false
	}
}

// run starts revealing cmd's output. The first unit lands immediately.
func (s *Session) run(cmd command.Command) (time.Duration, bool) {
	out := command.Output(cmd, s.opts.Portfolio)
	if out == "" {
		s.current = cmd
		s.finish()
		return 0, false
	}
	delay := s.opts.TypingDelay
	if !cmd.Recognized() {
		delay = s.opts.ErrorDelay
	}
	if s.started.IsZero() {
		s.started = time.Now()
	}
	s.current = cmd
	s.writer = typewriter.New(out, delay)
	s.phase = phaseRevealing
	s.transcript.Begin()
	if unit, ok := s.writer.Step(); ok {
		s.transcript.AppendToLast(unit)
	}
	return delay, true
}

func (s *Session) finish() {
	s.count++
	log.WithFields(logger.Fields{
		"command":    s.current.Name(),
		"recognized": s.current.Recognized(),
		"elapsed":    time.Since(s.started).Round(time.Millisecond).String(),
	}).Debug("command finished")
	s.phase = phaseIdle
	s.writer = nil
	s.current = command.Command{}
	s.started = time.Time{}
}

// Drain runs the in-flight command to completion without waiting. It is used
// by non-interactive renderers and tests.
func (s *Session) Drain() {
	for {
		if _, more := s.Tick(); !more {
			return
		}
	}
}
