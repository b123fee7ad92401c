package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventURLUpdated, func(e DomainEvent) { got <- e })

	b.Publish(URLUpdatedEvent{Seq: 3, URL: "https://cal.example/feed/abc"})

	select {
	case e := <-got:
		ev, ok := e.(URLUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, uint64(3), ev.Seq)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestBus_OnlyMatchingTypeIsDelivered(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var seen []EventType
	done := make(chan struct{})
	b.Subscribe(EventCopyFailed, func(e DomainEvent) {
		mu.Lock()
		seen = append(seen, e.Type())
		mu.Unlock()
	})
	b.Subscribe(EventURLCopied, func(DomainEvent) { close(done) })

	b.Publish(SubmissionIssuedEvent{Seq: 1})
	b.Publish(URLCopiedEvent{Method: "system"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, seen)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	calls := make(chan struct{}, 4)
	unsubscribe := b.Subscribe(EventURLCopied, func(DomainEvent) { calls <- struct{}{} })
	marker := make(chan struct{})
	b.Subscribe(EventCopyFailed, func(DomainEvent) { close(marker) })

	unsubscribe()
	b.Publish(URLCopiedEvent{Method: "system"})
	b.Publish(CopyFailedEvent{})

	<-marker
	assert.Len(t, calls, 0)
}

func TestBus_HandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New()
	defer b.Close()

	delivered := make(chan struct{})
	b.Subscribe(EventCopyFailed, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventURLCopied, func(DomainEvent) { close(delivered) })

	b.Publish(CopyFailedEvent{})
	b.Publish(URLCopiedEvent{Method: "osc52"})

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("dispatcher stopped after handler panic")
	}
}
