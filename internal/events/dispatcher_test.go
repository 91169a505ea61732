package events

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestInMemoryDispatcher_PublishRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []EventType
	d.Subscribe(EventLoginFailed, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	if err := d.Publish(context.Background(), NewEvent(EventLoginFailed, Actor{Subject: "alice"}, LoginPayload{Username: "alice"})); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := d.Publish(context.Background(), NewEvent(EventLoginSucceeded, Actor{}, nil)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(got) != 1 || got[0] != EventLoginFailed {
		t.Errorf("handled = %v, want [login_failed]", got)
	}
}

func TestInMemoryDispatcher_RunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	calls := 0
	d.Subscribe(EventAccessDenied, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventAccessDenied, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventAccessDenied, Actor{}, nil))
	if !errors.Is(err, boom) {
		t.Errorf("Publish() error = %v, want boom", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestInMemoryDispatcher_ConcurrentPublish(t *testing.T) {
	d := NewInMemoryDispatcher()
	var mu sync.Mutex
	count := 0
	d.Subscribe(EventTokenRejected, func(context.Context, Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Publish(context.Background(), NewEvent(EventTokenRejected, Actor{}, nil))
		}()
	}
	wg.Wait()

	if count != 50 {
		t.Errorf("count = %d, want 50", count)
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventLoginLocked, Actor{Subject: "bob"}, nil)
	if e.ID == "" || e.Timestamp.IsZero() {
		t.Errorf("NewEvent() = %+v", e)
	}
}
