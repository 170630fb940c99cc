package realtime

import (
	"testing"

	"github.com/taskforge/backend/internal/domain"
)

func TestHubPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe("user-1")
	ch2, cancel2 := hub.Subscribe("user-1")
	defer cancel1()
	defer cancel2()

	other, cancelOther := hub.Subscribe("user-2")
	defer cancelOther()

	hub.Publish("user-1", &domain.Notification{ID: "n1", UserID: "user-1"})

	for _, ch := range []<-chan *domain.Notification{ch1, ch2} {
		select {
		case n := <-ch:
			if n.ID != "n1" {
				t.Errorf("got notification %s, want n1", n.ID)
			}
		default:
			t.Error("subscriber did not receive the notification")
		}
	}

	select {
	case <-other:
		t.Error("notification leaked to another user's subscription")
	default:
	}
}

func TestHubCancelRemovesSubscription(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe("user-1")
	if got := hub.Subscribers("user-1"); got != 1 {
		t.Fatalf("Subscribers() = %d, want 1", got)
	}

	cancel()
	cancel() // second call is a no-op

	if got := hub.Subscribers("user-1"); got != 0 {
		t.Errorf("Subscribers() after cancel = %d, want 0", got)
	}

	// publishing to a user with no subscribers must not panic
	hub.Publish("user-1", &domain.Notification{ID: "n2"})
}

func TestHubSlowConsumerDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe("user-1")
	defer cancel()

	// overflow the buffer; Publish must drop instead of blocking
	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish("user-1", &domain.Notification{ID: "n"})
	}
}
