package speech

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeSynth blocks each utterance until released or cancelled and tracks
// how many are playing at once.
type fakeSynth struct {
	mu      sync.Mutex
	active  int
	maxSeen int
	spoken  []string
	started chan string
	release chan struct{}
	err     error
}

func newFakeSynth() *fakeSynth {
	return &fakeSynth{
		started: make(chan string, 8),
		release: make(chan struct{}),
	}
}

func (f *fakeSynth) Speak(ctx context.Context, u Utterance) error {
	f.mu.Lock()
	f.active++
	if f.active > f.maxSeen {
		f.maxSeen = f.active
	}
	f.spoken = append(f.spoken, u.Text)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	f.started <- u.Text
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.release:
		return f.err
	}
}

func (f *fakeSynth) activeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func waitStarted(t *testing.T, f *fakeSynth) string {
	t.Helper()
	select {
	case text := <-f.started:
		return text
	case <-time.After(2 * time.Second):
		t.Fatal("utterance never started")
		return ""
	}
}

func TestNarrator_ToggleTwiceRestoresIdle(t *testing.T) {
	synth := newFakeSynth()
	n := NewNarrator(synth, zap.NewNop())
	require.Equal(t, LabelIdle, n.Label())

	state := n.Toggle(context.Background(), Utterance{Text: "Hi! I’m Neem", Locale: "en-IN", Rate: 1})
	assert.Equal(t, Speaking, state)
	assert.Equal(t, LabelSpeaking, n.Label())
	waitStarted(t, synth)

	state = n.Toggle(context.Background(), Utterance{Text: "ignored"})
	assert.Equal(t, Idle, state)
	assert.Equal(t, LabelIdle, n.Label())
	assert.Equal(t, 0, synth.activeCount())
	assert.Equal(t, []string{"Hi! I’m Neem"}, synth.spoken)
}

func TestNarrator_NaturalCompletion(t *testing.T) {
	synth := newFakeSynth()
	n := NewNarrator(synth, zap.NewNop())

	finished := make(chan State, 1)
	n.OnFinish(func(s State) { finished <- s })

	n.Start(context.Background(), Utterance{Text: "short"})
	waitStarted(t, synth)
	close(synth.release)

	select {
	case s := <-finished:
		assert.Equal(t, Idle, s)
	case <-time.After(2 * time.Second):
		t.Fatal("finish hook not called")
	}
	n.Wait()
	assert.Equal(t, Idle, n.State())
	assert.Equal(t, LabelIdle, n.Label())
}

func TestNarrator_StartCancelsInFlight(t *testing.T) {
	synth := newFakeSynth()
	n := NewNarrator(synth, zap.NewNop())

	n.Start(context.Background(), Utterance{Text: "first"})
	waitStarted(t, synth)
	n.Start(context.Background(), Utterance{Text: "second"})
	waitStarted(t, synth)

	assert.Equal(t, Speaking, n.State())
	assert.Equal(t, 1, synth.activeCount())

	n.Stop()
	assert.Equal(t, Idle, n.State())
	assert.Equal(t, 0, synth.activeCount())
	assert.Equal(t, 1, synth.maxSeen)
	assert.Equal(t, []string{"first", "second"}, synth.spoken)
}

func TestNarrator_StopWhenIdle(t *testing.T) {
	n := NewNarrator(newFakeSynth(), nil)
	n.Stop()
	n.Wait()
	assert.Equal(t, Idle, n.State())
}

func TestNarrator_LogsPlaybackFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	synth := newFakeSynth()
	synth.err = assert.AnError
	n := NewNarrator(synth, zap.New(core))

	n.Start(context.Background(), Utterance{Text: "x"})
	waitStarted(t, synth)
	close(synth.release)
	n.Wait()

	require.Eventually(t, func() bool { return n.State() == Idle }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return logs.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "Speech playback failed", logs.All()[0].Message)
}

func TestExecSynthesizer_Args(t *testing.T) {
	s := ExecSynthesizer{}

	assert.Equal(t,
		[]string{"-s", "175", "-v", "en-in", "--", "Hello"},
		s.Args(Utterance{Text: "Hello", Locale: "en-IN", Rate: 1}))
	assert.Equal(t,
		[]string{"-s", "262", "--", "Hello"},
		s.Args(Utterance{Text: "Hello", Rate: 1.5}))
	assert.Equal(t,
		[]string{"-s", "175", "--", "Hello"},
		s.Args(Utterance{Text: "Hello"}))
}
