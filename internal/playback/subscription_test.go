package playback

import (
	"testing"
	"time"
)

func TestSubscriptionNonBlockingSend(t *testing.T) {
	sub := newSubscription()

	// Fill the buffer past capacity; sends must never block.
	for i := 0; i < eventBufferSize+5; i++ {
		sub.sendState(StateChange{Previous: Paused, Current: Playing})
	}

	received := 0
	for {
		select {
		case <-sub.StateChanged:
			received++
		default:
			if received != eventBufferSize {
				t.Errorf("received %d events, want %d", received, eventBufferSize)
			}
			return
		}
	}
}

func TestSubscriptionDone(t *testing.T) {
	sub := newSubscription()
	sub.close()

	select {
	case <-sub.Done:
	case <-time.After(time.Second):
		t.Fatal("Done channel not closed")
	}
}

func TestUnsubscribeRemovesAndSignals(t *testing.T) {
	store, mock, provider := newEmptyRig(t)
	c := New(store, mock, provider)
	defer c.Close()

	sub := c.Subscribe()
	c.Unsubscribe(sub)

	select {
	case <-sub.Done:
	case <-time.After(time.Second):
		t.Fatal("Done channel not closed after Unsubscribe")
	}

	c.SetLoop(LoopAll)
	select {
	case <-sub.ModeChanged:
		t.Error("unsubscribed subscription received an event")
	default:
	}
}
