package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("connection.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindConnectionProposed, Payload: ConnectionChange{RequestID: "r1", ProposerID: 1, TargetID: 2}})

	select {
	case evt := <-ch:
		if evt.Kind != KindConnectionProposed {
			t.Errorf("got kind %q, want %s", evt.Kind, KindConnectionProposed)
		}
		if evt.Timestamp.IsZero() {
			t.Error("expected Publish to stamp a timestamp")
		}
		change, ok := evt.Payload.(ConnectionChange)
		if !ok || !change.Involves(2) || change.Involves(3) {
			t.Errorf("unexpected payload %#v", evt.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("message.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindConnectionAccepted})
	b.Publish(Event{Kind: KindMessageAppended})

	select {
	case evt := <-ch:
		if evt.Kind != KindMessageAppended {
			t.Errorf("got kind %q, want %s", evt.Kind, KindMessageAppended)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	// Ensure the connection event was not delivered.
	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("", 10)
	unsub()
	unsub() // second call is a no-op

	b.Publish(Event{Kind: KindStatusChanged})

	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
	if n := b.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("message.", 1)
	defer unsub()

	b.Publish(Event{Kind: KindMessageAppended, Payload: MessageAppended{MessageID: 1}})
	// Dropped, buffer is full.
	b.Publish(Event{Kind: KindMessageAppended, Payload: MessageAppended{MessageID: 2}})

	evt := <-ch
	if got := evt.Payload.(MessageAppended).MessageID; got != 1 {
		t.Errorf("got message %d, want 1", got)
	}
}

func TestPublishOnNilBus(t *testing.T) {
	var b *Bus
	b.Publish(Event{Kind: KindMessageAppended})
}
