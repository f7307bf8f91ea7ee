package speech

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// State is the read-aloud control state.
type State int

const (
	Idle State = iota
	Speaking
)

func (s State) String() string {
	if s == Speaking {
		return "speaking"
	}
	return "idle"
}

// Control labels shown for each state.
const (
	LabelIdle     = "Read aloud"
	LabelSpeaking = "Stop"
)

// Utterance is a unit of text handed to a speech capability.
type Utterance struct {
	Text   string  `json:"text"`
	Locale string  `json:"locale"`
	Rate   float64 `json:"rate"`
}

// Synthesizer speaks an utterance. Speak blocks until playback ends and
// must return promptly once ctx is cancelled.
type Synthesizer interface {
	Speak(ctx context.Context, u Utterance) error
}

// Narrator owns the single active utterance. Toggling while idle starts
// speaking; toggling while speaking cancels. Starting a new utterance
// cancels the one in flight first.
type Narrator struct {
	synth  Synthesizer
	logger *zap.Logger
	onDone func(State)

	mu     sync.Mutex
	state  State
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// NewNarrator creates an idle narrator.
func NewNarrator(synth Synthesizer, logger *zap.Logger) *Narrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Narrator{synth: synth, logger: logger}
}

// OnFinish registers a hook called when an utterance ends by itself.
func (n *Narrator) OnFinish(fn func(State)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onDone = fn
}

// State returns the current state.
func (n *Narrator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Label returns the control label for the current state.
func (n *Narrator) Label() string {
	if n.State() == Speaking {
		return LabelSpeaking
	}
	return LabelIdle
}

// Toggle moves Idle to Speaking (starting u) or Speaking to Idle.
func (n *Narrator) Toggle(ctx context.Context, u Utterance) State {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state == Speaking {
		n.stopLocked()
		return n.state
	}
	n.startLocked(ctx, u)
	return n.state
}

// Start speaks u, cancelling anything in flight.
func (n *Narrator) Start(ctx context.Context, u Utterance) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.startLocked(ctx, u)
}

// Stop cancels the active utterance, if any, and waits for it to end.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
}

// Wait blocks until the current utterance, if any, has ended.
func (n *Narrator) Wait() {
	n.mu.Lock()
	done := n.done
	n.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (n *Narrator) startLocked(ctx context.Context, u Utterance) {
	n.stopLocked()

	speakCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	n.gen++
	gen := n.gen
	n.state = Speaking
	n.cancel = cancel
	n.done = done

	go n.run(speakCtx, u, gen, done)
}

// stopLocked cancels the active utterance and waits for the synthesizer to
// return, so no utterance is active afterwards. run closes done before it
// takes the lock, which keeps this wait from deadlocking.
func (n *Narrator) stopLocked() {
	if n.state != Speaking {
		return
	}
	n.cancel()
	<-n.done
	n.gen++
	n.state = Idle
	n.cancel = nil
	n.done = nil
}

func (n *Narrator) run(ctx context.Context, u Utterance, gen uint64, done chan struct{}) {
	err := n.synth.Speak(ctx, u)
	close(done)

	if err != nil && !errors.Is(err, context.Canceled) {
		n.logger.Warn("Speech playback failed", zap.Error(err))
	}

	n.mu.Lock()
	if n.gen != gen {
		// Superseded by Stop or a newer Start.
		n.mu.Unlock()
		return
	}
	n.cancel()
	n.state = Idle
	n.cancel = nil
	n.done = nil
	hook := n.onDone
	n.mu.Unlock()

	if hook != nil {
		hook(Idle)
	}
}
