package core

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// stubEnvironment returns a terminal timestep on the terminalAt-th step of
// every episode. terminalAt == 0 makes Reset itself terminal. Observations
// are "<episode>:<step>" so transitions can be checked by value.
type stubEnvironment struct {
	terminalAt int

	resets  int
	steps   int
	episode int
	step    int
	actions []Action
	events  *[]string

	resetErr error
	stepErr  error
	failAt   int
}

var _ Environment = &stubEnvironment{}

func (e *stubEnvironment) observation() string {
	return fmt.Sprintf("%d:%d", e.episode, e.step)
}

func (e *stubEnvironment) record(event string) {
	if e.events != nil {
		*e.events = append(*e.events, event)
	}
}

func (e *stubEnvironment) Reset() (TimeStep, error) {
	e.record("reset")
	e.resets++
	if e.resetErr != nil {
		return TimeStep{}, e.resetErr
	}
	e.episode = e.resets
	e.step = 0
	if e.terminalAt == 0 {
		return Termination(0, e.observation()), nil
	}
	return Restart(e.observation()), nil
}

func (e *stubEnvironment) Step(a Action) (TimeStep, error) {
	e.record("step")
	e.steps++
	e.actions = append(e.actions, a)
	if e.stepErr != nil && e.steps == e.failAt {
		return TimeStep{}, e.stepErr
	}
	e.step++
	if e.step >= e.terminalAt {
		return Termination(1, e.observation()), nil
	}
	return Transition(0, e.observation(), 1), nil
}

type transition struct {
	timestep TimeStep
	action   Action
	next     TimeStep
}

type recordingAgent struct {
	selected    []TimeStep
	transitions []transition
	events      *[]string

	selectErr error
	updateErr error
	failAt    int
}

var _ Agent = &recordingAgent{}

func (a *recordingAgent) record(event string) {
	if a.events != nil {
		*a.events = append(*a.events, event)
	}
}

func (a *recordingAgent) SelectAction(t TimeStep) (Action, error) {
	a.record("select")
	a.selected = append(a.selected, t)
	if a.selectErr != nil && len(a.selected) == a.failAt {
		return nil, a.selectErr
	}
	return len(a.selected), nil
}

func (a *recordingAgent) Update(t TimeStep, action Action, next TimeStep) error {
	a.record("update")
	a.transitions = append(a.transitions, transition{timestep: t, action: action, next: next})
	if a.updateErr != nil && len(a.transitions) == a.failAt {
		return a.updateErr
	}
	return nil
}

// forwardingEnvironment counts the calls routed through it
type forwardingEnvironment struct {
	inner  Environment
	resets int
	steps  int
}

func (f *forwardingEnvironment) Reset() (TimeStep, error) {
	f.resets++
	return f.inner.Reset()
}

func (f *forwardingEnvironment) Step(a Action) (TimeStep, error) {
	f.steps++
	return f.inner.Step(a)
}

func TestRunResetsOncePerEpisode(t *testing.T) {
	for _, episodes := range []int{0, 1, 3, 10} {
		t.Run(fmt.Sprintf("episodes=%d", episodes), func(t *testing.T) {
			env := &stubEnvironment{terminalAt: 2}
			agent := &recordingAgent{}

			if err := NewRunner(nil).Run(agent, env, episodes, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if env.resets != episodes {
				t.Errorf("expected %d resets, got %d", episodes, env.resets)
			}
		})
	}
}

func TestRunStepsUntilTerminal(t *testing.T) {
	const k, episodes = 4, 3
	env := &stubEnvironment{terminalAt: k}
	agent := &recordingAgent{}

	if err := NewRunner(nil).Run(agent, env, episodes, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(agent.selected) != k*episodes {
		t.Errorf("expected %d actions selected, got %d", k*episodes, len(agent.selected))
	}
	if env.steps != k*episodes {
		t.Errorf("expected %d steps, got %d", k*episodes, env.steps)
	}
	if len(agent.transitions) != k*episodes {
		t.Errorf("expected %d updates, got %d", k*episodes, len(agent.transitions))
	}

	// exactly one terminal next timestep per episode, at the end of it
	for i, tr := range agent.transitions {
		wantLast := (i+1)%k == 0
		if tr.next.Last() != wantLast {
			t.Errorf("update %d: expected next.Last() == %v", i, wantLast)
		}
		if tr.timestep.Last() {
			t.Errorf("update %d: previous timestep is terminal", i)
		}
	}
}

func TestRunCallOrder(t *testing.T) {
	events := make([]string, 0)
	env := &stubEnvironment{terminalAt: 2, events: &events}
	agent := &recordingAgent{events: &events}

	if err := NewRunner(nil).Run(agent, env, 2, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"reset", "select", "step", "update", "select", "step", "update",
		"reset", "select", "step", "update", "select", "step", "update",
	}
	if len(events) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(events), events)
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("call %d: expected %s, got %s", i, expected[i], events[i])
		}
	}
}

func TestRunUpdateReceivesOrderedTransition(t *testing.T) {
	env := &stubEnvironment{terminalAt: 3}
	agent := &recordingAgent{}

	if err := NewRunner(nil).Run(agent, env, 2, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, tr := range agent.transitions {
		episode := i/3 + 1
		step := i % 3
		prev := fmt.Sprintf("%d:%d", episode, step)
		next := fmt.Sprintf("%d:%d", episode, step+1)
		if tr.timestep.Observation != prev {
			t.Errorf("update %d: expected previous observation %s, got %v", i, prev, tr.timestep.Observation)
		}
		if tr.next.Observation != next {
			t.Errorf("update %d: expected next observation %s, got %v", i, next, tr.next.Observation)
		}
		if tr.action != env.actions[i] {
			t.Errorf("update %d: expected action %v, got %v", i, env.actions[i], tr.action)
		}
		// the timestep handed to SelectAction is the most recent one
		if agent.selected[i].Observation != prev {
			t.Errorf("select %d: expected observation %s, got %v", i, prev, agent.selected[i].Observation)
		}
	}
	if step := agent.transitions[0].timestep; !step.First() {
		t.Errorf("expected the first transition to start from the reset timestep, got %s", step.Type)
	}
}

func TestRunNotVerboseUsesCallerEnvironment(t *testing.T) {
	env := &stubEnvironment{terminalAt: 2}
	agent := &recordingAgent{}
	wrapped := false
	runner := NewRunner(func(e Environment, _ bool) Environment {
		wrapped = true
		return &forwardingEnvironment{inner: e}
	})

	if err := runner.Run(agent, env, 3, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wrapped {
		t.Error("environment was wrapped on a non-verbose run")
	}
	if env.resets != 3 || env.steps != 6 {
		t.Errorf("expected caller environment to see 3 resets and 6 steps, got %d and %d", env.resets, env.steps)
	}
}

func TestRunVerboseRoutesThroughWrapper(t *testing.T) {
	env := &stubEnvironment{terminalAt: 2}
	agent := &recordingAgent{}

	var wrapper *forwardingEnvironment
	var gotInner Environment
	logEvery := true
	runner := NewRunner(func(e Environment, every bool) Environment {
		gotInner = e
		logEvery = every
		wrapper = &forwardingEnvironment{inner: e}
		return wrapper
	})

	if err := runner.Run(agent, env, 3, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wrapper == nil {
		t.Fatal("environment was not wrapped on a verbose run")
	}
	if gotInner != Environment(env) {
		t.Error("wrapper did not receive the caller environment")
	}
	if logEvery {
		t.Error("expected wrapper to be asked to log at sparse episode ends")
	}
	if wrapper.resets != env.resets || wrapper.steps != env.steps {
		t.Errorf("calls bypassed the wrapper: wrapper %d/%d, env %d/%d", wrapper.resets, wrapper.steps, env.resets, env.steps)
	}
	if wrapper.resets != 3 {
		t.Errorf("expected 3 resets through the wrapper, got %d", wrapper.resets)
	}
}

func TestRunVerboseWithoutWrapper(t *testing.T) {
	env := &stubEnvironment{terminalAt: 1}
	agent := &recordingAgent{}

	if err := (&Runner{}).Run(agent, env, 2, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.resets != 2 {
		t.Errorf("expected 2 resets, got %d", env.resets)
	}
}

func TestRunZeroEpisodes(t *testing.T) {
	events := make([]string, 0)
	env := &stubEnvironment{terminalAt: 1, events: &events}
	agent := &recordingAgent{events: &events}

	for _, episodes := range []int{0, -1} {
		if err := NewRunner(nil).Run(agent, env, episodes, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(events) != 0 {
		t.Errorf("expected no calls, got %v", events)
	}
}

func TestRunTerminalReset(t *testing.T) {
	env := &stubEnvironment{terminalAt: 0}
	agent := &recordingAgent{}

	if err := NewRunner(nil).Run(agent, env, 2, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.resets != 2 {
		t.Errorf("expected 2 resets, got %d", env.resets)
	}
	if len(agent.selected) != 0 || env.steps != 0 || len(agent.transitions) != 0 {
		t.Errorf("expected no interaction, got %d selects, %d steps, %d updates",
			len(agent.selected), env.steps, len(agent.transitions))
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	errReset := errors.New("reset failed")
	errSelect := errors.New("select failed")
	errStep := errors.New("step failed")
	errUpdate := errors.New("update failed")

	t.Run("reset", func(t *testing.T) {
		env := &stubEnvironment{terminalAt: 1, resetErr: errReset}
		agent := &recordingAgent{}
		err := NewRunner(nil).Run(agent, env, 5, false)
		if err != errReset {
			t.Fatalf("expected %v, got %v", errReset, err)
		}
		if env.resets != 1 || len(agent.selected) != 0 {
			t.Errorf("run continued after failure: %d resets, %d selects", env.resets, len(agent.selected))
		}
	})

	t.Run("select", func(t *testing.T) {
		env := &stubEnvironment{terminalAt: 3}
		agent := &recordingAgent{selectErr: errSelect, failAt: 2}
		err := NewRunner(nil).Run(agent, env, 5, false)
		if err != errSelect {
			t.Fatalf("expected %v, got %v", errSelect, err)
		}
		if env.steps != 1 || len(agent.transitions) != 1 {
			t.Errorf("run continued after failure: %d steps, %d updates", env.steps, len(agent.transitions))
		}
	})

	t.Run("step", func(t *testing.T) {
		env := &stubEnvironment{terminalAt: 2, stepErr: errStep, failAt: 3}
		agent := &recordingAgent{}
		err := NewRunner(nil).Run(agent, env, 5, false)
		if err != errStep {
			t.Fatalf("expected %v, got %v", errStep, err)
		}
		if env.resets != 2 || len(agent.transitions) != 2 {
			t.Errorf("run continued after failure: %d resets, %d updates", env.resets, len(agent.transitions))
		}
	})

	t.Run("update", func(t *testing.T) {
		env := &stubEnvironment{terminalAt: 2}
		agent := &recordingAgent{updateErr: errUpdate, failAt: 1}
		err := NewRunner(nil).Run(agent, env, 5, false)
		if err != errUpdate {
			t.Fatalf("expected %v, got %v", errUpdate, err)
		}
		if env.steps != 1 || len(agent.selected) != 1 {
			t.Errorf("run continued after failure: %d steps, %d selects", env.steps, len(agent.selected))
		}
	})

	t.Run("wrapper", func(t *testing.T) {
		env := &stubEnvironment{terminalAt: 2, resetErr: errReset}
		agent := &recordingAgent{}
		runner := NewRunner(func(e Environment, _ bool) Environment {
			return &forwardingEnvironment{inner: e}
		})
		if err := runner.Run(agent, env, 1, true); !errors.Is(err, errReset) {
			t.Fatalf("expected %v through the wrapper, got %v", errReset, err)
		}
	})
}

// endlessEnvironment never reports a terminal timestep until released
type endlessEnvironment struct {
	steps    atomic.Int64
	released atomic.Bool
}

func (e *endlessEnvironment) Reset() (TimeStep, error) {
	return Restart(0), nil
}

func (e *endlessEnvironment) Step(_ Action) (TimeStep, error) {
	n := e.steps.Add(1)
	if e.released.Load() {
		return Termination(0, n), nil
	}
	return Transition(0, n, 1), nil
}

type noopAgent struct{}

func (noopAgent) SelectAction(_ TimeStep) (Action, error) {
	return 0, nil
}

func (noopAgent) Update(_ TimeStep, _ Action, _ TimeStep) error {
	return nil
}

func TestRunNeverTerminalDoesNotReturn(t *testing.T) {
	env := &endlessEnvironment{}
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- NewRunner(nil).Run(noopAgent{}, env, 1, false)
	}()

	select {
	case err := <-doneCh:
		t.Fatalf("run returned on an environment that never terminates: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	if env.steps.Load() == 0 {
		t.Error("expected the runner to keep stepping")
	}

	// let the goroutine finish so it does not outlive the test
	env.released.Store(true)
	select {
	case err := <-doneCh:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the environment terminated")
	}
}
