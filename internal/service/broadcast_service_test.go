package service

import (
	"context"
	"testing"
	"time"

	"github.com/windoze95/speakify-bot/internal/config"
	"github.com/windoze95/speakify-bot/internal/testutil"
)

func newTestBroadcastService(users *testutil.MockUserRepo, tp *testutil.MockTransport) *BroadcastService {
	cfg := &config.Config{}
	cfg.EnvVars.BroadcastDelay = time.Millisecond
	cfg.EnvVars.SendTimeout = time.Second
	return NewBroadcastService(cfg, users, tp)
}

func TestBroadcast_SkipsSender(t *testing.T) {
	users := testutil.NewMockUserRepo()
	for _, id := range []int64{100, 200, 300} {
		if err := users.TouchUser(id); err != nil {
			t.Fatalf("TouchUser error: %v", err)
		}
	}
	tp := testutil.NewMockTransport()
	svc := newTestBroadcastService(users, tp)

	result, err := svc.Broadcast(context.Background(), 200, "Good luck!")
	if err != nil {
		t.Fatalf("Broadcast error: %v", err)
	}
	if result.Sent != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 sent, 0 failed", result)
	}
	if got := tp.MessagesTo(200); len(got) != 0 {
		t.Errorf("sender received %v, want nothing", got)
	}
	for _, id := range []int64{100, 300} {
		msgs := tp.MessagesTo(id)
		if len(msgs) != 1 || msgs[0] != "Good luck!" {
			t.Errorf("messages to %d = %v", id, msgs)
		}
	}
}

func TestBroadcast_FailuresCountedNotRetried(t *testing.T) {
	users := testutil.NewMockUserRepo()
	for _, id := range []int64{1, 2, 3, 4} {
		if err := users.TouchUser(id); err != nil {
			t.Fatalf("TouchUser error: %v", err)
		}
	}
	tp := testutil.NewMockTransport()
	tp.SendErrs[2] = errTest
	svc := newTestBroadcastService(users, tp)

	result, err := svc.Broadcast(context.Background(), 99, "hello")
	if err != nil {
		t.Fatalf("Broadcast error: %v", err)
	}
	if result.Sent != 3 || result.Failed != 1 {
		t.Errorf("result = %+v, want 3 sent, 1 failed", result)
	}
	// The failed recipient must not stop delivery to later recipients.
	if msgs := tp.MessagesTo(4); len(msgs) != 1 {
		t.Errorf("recipient after failure got %v, want one message", msgs)
	}
}

func TestBroadcast_NoRecipients(t *testing.T) {
	users := testutil.NewMockUserRepo()
	tp := testutil.NewMockTransport()
	svc := newTestBroadcastService(users, tp)

	// No users registered, nothing to send.
	result, err := svc.Broadcast(context.Background(), 1, "hello")
	if err != nil {
		t.Fatalf("Broadcast error: %v", err)
	}
	if result.Sent != 0 || result.Failed != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestBroadcast_CancelledContext(t *testing.T) {
	users := testutil.NewMockUserRepo()
	for _, id := range []int64{1, 2} {
		if err := users.TouchUser(id); err != nil {
			t.Fatalf("TouchUser error: %v", err)
		}
	}
	tp := testutil.NewMockTransport()
	svc := newTestBroadcastService(users, tp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Broadcast(ctx, 99, "hello"); err == nil {
		t.Error("Broadcast with cancelled context returned nil error")
	}
}
