package status

import (
	"testing"

	"github.com/matheus3301/pairchat/internal/bus"
)

func TestInitialState(t *testing.T) {
	m := NewMachine(nil)
	if m.Current() != Booting {
		t.Errorf("initial state = %s, want BOOTING", m.Current())
	}
	if m.Serving() {
		t.Error("BOOTING daemon must not serve")
	}
}

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{Booting, Migrating},
		{Booting, Error},
		{Migrating, Ready},
		{Migrating, Error},
		{Ready, Draining},
		{Draining, Stopped},
		{Error, Draining},
		{Error, Booting},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			m := NewMachine(nil)
			walkTo(t, m, tt.from)
			if err := m.Transition(tt.to); err != nil {
				t.Errorf("Transition(%s -> %s) error = %v", tt.from, tt.to, err)
			}
			if m.Current() != tt.to {
				t.Errorf("state = %s, want %s", m.Current(), tt.to)
			}
		})
	}
}

func TestInvalidTransition(t *testing.T) {
	m := NewMachine(nil)
	if err := m.Transition(Ready); err == nil {
		t.Error("Transition(BOOTING -> READY) should fail; migrations must run first")
	}
	if m.Current() != Booting {
		t.Errorf("state = %s, want BOOTING (should not have changed)", m.Current())
	}
}

func TestStoppedIsTerminal(t *testing.T) {
	m := NewMachine(nil)
	walkTo(t, m, Stopped)
	for _, to := range []State{Booting, Migrating, Ready, Draining, Error} {
		if err := m.Transition(to); err == nil {
			t.Errorf("Transition(STOPPED -> %s) should fail", to)
		}
	}
}

func TestTransitionEmitsEvent(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("daemon.", 10)
	defer unsub()

	m := NewMachine(b)
	if err := m.Transition(Migrating); err != nil {
		t.Fatal(err)
	}

	evt := <-ch
	if evt.Kind != bus.KindStatusChanged {
		t.Errorf("event kind = %q, want %s", evt.Kind, bus.KindStatusChanged)
	}
	change, ok := evt.Payload.(StatusChange)
	if !ok {
		t.Fatalf("payload type = %T, want StatusChange", evt.Payload)
	}
	if change.From != Booting || change.To != Migrating {
		t.Errorf("change = %v -> %v, want BOOTING -> MIGRATING", change.From, change.To)
	}
}

// TestStartupShutdownLifecycle walks the path the daemon takes on a clean run:
// BOOTING → MIGRATING → READY → DRAINING → STOPPED
func TestStartupShutdownLifecycle(t *testing.T) {
	m := NewMachine(nil)

	steps := []State{Migrating, Ready, Draining, Stopped}
	for _, s := range steps {
		if err := m.Transition(s); err != nil {
			t.Fatalf("Transition to %s: %v (current: %s)", s, err, m.Current())
		}
		if s == Ready && !m.Serving() {
			t.Error("READY daemon should serve")
		}
	}
	if m.Serving() {
		t.Error("STOPPED daemon must not serve")
	}
}

// TestMigrationFailureCanStillDrain verifies that a daemon whose migrations
// failed can shut down through DRAINING instead of hanging in ERROR.
func TestMigrationFailureCanStillDrain(t *testing.T) {
	m := NewMachine(nil)
	walkTo(t, m, Migrating)

	if err := m.Transition(Error); err != nil {
		t.Fatal(err)
	}
	if err := m.Transition(Draining); err != nil {
		t.Fatalf("ERROR -> DRAINING: %v", err)
	}
	if err := m.Transition(Stopped); err != nil {
		t.Fatalf("DRAINING -> STOPPED: %v", err)
	}
}

// walkTo is a helper that transitions the machine to a target state.
func walkTo(t *testing.T, m *Machine, target State) {
	t.Helper()
	paths := map[State][]State{
		Booting:   {},
		Migrating: {Migrating},
		Ready:     {Migrating, Ready},
		Draining:  {Migrating, Ready, Draining},
		Stopped:   {Migrating, Ready, Draining, Stopped},
		Error:     {Error},
	}
	for _, s := range paths[target] {
		if err := m.Transition(s); err != nil {
			t.Fatalf("walkTo(%s): %v", target, err)
		}
	}
}
