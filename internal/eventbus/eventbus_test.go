package eventbus

import (
	"context"
	"testing"
)

type pingEvent struct{ N int }
type otherEvent struct{}

func TestPublishReachesSubscribersOfSameType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	unsub := Subscribe(func(_ context.Context, e pingEvent) { got = append(got, e.N) })
	defer unsub()
	Subscribe(func(_ context.Context, _ otherEvent) { t.Error("wrong type delivered") })

	Publish(context.Background(), pingEvent{N: 1})
	Publish(context.Background(), pingEvent{N: 2})

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	Use(New())
	defer Use(nil)

	count := 0
	unsub := Subscribe(func(_ context.Context, _ pingEvent) { count++ })
	Publish(context.Background(), pingEvent{})
	unsub()
	Publish(context.Background(), pingEvent{})

	if count != 1 {
		t.Fatalf("expected one delivery, got %d", count)
	}
}

func TestUnsubscribeRemovesOnlyItsOwnHandler(t *testing.T) {
	Use(New())
	defer Use(nil)

	first, second := 0, 0
	unsubFirst := Subscribe(func(_ context.Context, _ pingEvent) { first++ })
	Subscribe(func(_ context.Context, _ pingEvent) { second++ })

	unsubFirst()
	Publish(context.Background(), pingEvent{})

	if first != 0 || second != 1 {
		t.Fatalf("first=%d second=%d", first, second)
	}
}

func TestPublishWithoutBusIsNoop(t *testing.T) {
	Use(nil)
	Publish(context.Background(), pingEvent{}) // must not panic
	if unsub := Subscribe(func(_ context.Context, _ pingEvent) {}); unsub == nil {
		t.Fatal("Subscribe must return a usable unsubscribe func")
	}
}
