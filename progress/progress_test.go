package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type mockState struct {
	value string
}

func (m *mockState) String() string {
	return m.value
}

func TestNewProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	defer p.Stop()

	if p.w == nil {
		t.Error("Progress writer should not be nil")
	}

	time.Sleep(50 * time.Millisecond)

	if p.ticker == nil {
		t.Error("Progress ticker should be started")
	}
}

func TestProgressAdd(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	defer p.Stop()

	p.Add(&mockState{value: "state1"})
	if len(p.states) != 1 {
		t.Errorf("states count = %d, want 1", len(p.states))
	}

	p.Add(&mockState{value: "state2"})
	if len(p.states) != 2 {
		t.Errorf("states count = %d, want 2", len(p.states))
	}
}

func TestProgressStop(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	time.Sleep(50 * time.Millisecond)

	if stopped := p.Stop(); !stopped {
		t.Error("Stop() should return true on first call")
	}

	if stopped := p.Stop(); stopped {
		t.Error("Stop() should return false on subsequent calls")
	}
}

func TestProgressStopAndClear(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	p.Add(&mockState{value: "verifying"})

	time.Sleep(150 * time.Millisecond)

	if stopped := p.StopAndClear(); !stopped {
		t.Error("StopAndClear() should return true on first call")
	}

	output := buf.String()
	if !strings.Contains(output, "\033[?25h") {
		t.Error("StopAndClear() should restore the cursor")
	}
}

func TestProgressStopSpinners(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	spinner := NewSpinner("checking")
	p.Add(spinner)

	time.Sleep(50 * time.Millisecond)

	if !spinner.stopped.IsZero() {
		t.Error("spinner should not be stopped before Progress.Stop()")
	}

	p.Stop()

	if spinner.stopped.IsZero() {
		t.Error("spinner should be stopped after Progress.Stop()")
	}
}

func TestProgressRender(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	defer p.Stop()

	p.Add(&mockState{value: "consolidated.00.pth"})

	time.Sleep(150 * time.Millisecond)

	output := buf.String()
	if !strings.Contains(output, "consolidated.00.pth") {
		t.Errorf("render should include state output, got %q", output)
	}
}

func TestProgressMultipleStates(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	defer p.Stop()

	for i := 0; i < 5; i++ {
		p.Add(&mockState{value: "line"})
	}

	if len(p.states) != 5 {
		t.Errorf("states count = %d, want 5", len(p.states))
	}
}

func TestProgressConcurrentAccess(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	defer p.Stop()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			p.Add(&mockState{value: "state"})
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if len(p.states) != 10 {
		t.Errorf("states count = %d, want 10", len(p.states))
	}
}

func TestStateInterface(t *testing.T) {
	var _ State = &Bar{}
	var _ State = &Spinner{}
	var _ State = &StepBar{}
}

func TestProgressPosTracking(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	defer p.Stop()

	if p.pos != 0 {
		t.Errorf("initial pos = %d, want 0", p.pos)
	}

	p.Add(&mockState{value: "line"})

	time.Sleep(150 * time.Millisecond)

	if p.pos != 1 {
		t.Errorf("pos after render = %d, want 1", p.pos)
	}
}
