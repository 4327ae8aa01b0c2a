package buttons

import (
	"context"
	"testing"
	"time"
)

func TestChannelButtonsDeliversInOrder(t *testing.T) {
	btns := NewChannelButtons(4)
	ctx := context.Background()
	for _, event := range []Event{Tap, Tap, Exit} {
		if err := btns.Send(ctx, event); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	for _, want := range []Event{Tap, Tap, Exit} {
		if got := <-btns.Events(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}

func TestChannelButtonsSendAfterStop(t *testing.T) {
	btns := NewChannelButtons(1)
	_ = btns.Stop()
	_ = btns.Stop()
	if err := btns.Send(context.Background(), Tap); err == nil {
		t.Error("Expected error sending to stopped buttons")
	}
	if _, ok := <-btns.Events(); ok {
		t.Error("Expected closed channel")
	}
}

func TestChannelButtonsSendHonoursContext(t *testing.T) {
	btns := NewChannelButtons(0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := btns.Send(ctx, Tap); err != context.DeadlineExceeded {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestMergeCombinesSources(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := NewChannelButtons(1)
	b := NewChannelButtons(1)
	merged := Merge(ctx, a, b)

	_ = a.Send(ctx, Tap)
	_ = b.Send(ctx, Exit)

	got := map[Event]int{}
	for i := 0; i < 2; i++ {
		select {
		case event := <-merged:
			got[event]++
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for merged events")
		}
	}
	if got[Tap] != 1 || got[Exit] != 1 {
		t.Errorf("Expected one tap and one exit, got %v", got)
	}

	_ = a.Stop()
	_ = b.Stop()
	select {
	case _, ok := <-merged:
		if ok {
			t.Error("Expected merged channel to close")
		}
	case <-time.After(time.Second):
		t.Fatal("Merged channel did not close")
	}
}
