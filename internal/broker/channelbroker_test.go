package broker_test

import (
	"testing"
	"time"

	"github.com/myrjola/jurassictravel/internal/broker"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, c <-chan T) (T, bool) {
	t.Helper()
	select {
	case v, ok := <-c:
		return v, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero, false
}

func TestChannelBroker(t *testing.T) {
	type testCase struct {
		name     string
		testFunc func(t *testing.T, b *broker.ChannelBroker[string])
	}
	tests := []testCase{
		{
			name: "every subscriber receives content",
			testFunc: func(t *testing.T, b *broker.ChannelBroker[string]) {
				first, unsubscribeFirst := b.Subscribe()
				defer unsubscribeFirst()
				second, unsubscribeSecond := b.Subscribe()
				defer unsubscribeSecond()

				b.Publish("state")
				msg, ok := receive(t, first)
				require.True(t, ok)
				require.Equal(t, "state", msg)
				msg, ok = receive(t, second)
				require.True(t, ok)
				require.Equal(t, "state", msg)
			},
		},
		{
			name: "unsubscribe closes the channel",
			testFunc: func(t *testing.T, b *broker.ChannelBroker[string]) {
				c, unsubscribe := b.Subscribe()
				unsubscribe()
				_, ok := receive(t, c)
				require.False(t, ok, "channel not closed")
				b.Publish("ignored")
			},
		},
		{
			name: "slow subscribers do not block publishers",
			testFunc: func(t *testing.T, b *broker.ChannelBroker[string]) {
				c, unsubscribe := b.Subscribe()
				defer unsubscribe()
				for range 10 {
					b.Publish("state")
				}
				msg, ok := receive(t, c)
				require.True(t, ok)
				require.Equal(t, "state", msg)
			},
		},
		{
			name: "distinct values survive a slow subscriber",
			testFunc: func(t *testing.T, b *broker.ChannelBroker[string]) {
				c, unsubscribe := b.Subscribe()
				defer unsubscribe()
				b.Publish("chat:someone-else")
				b.Publish("state")
				b.Publish("chat:someone-else")
				b.Publish("state")

				var got []string
				for range 2 {
					msg, ok := receive(t, c)
					require.True(t, ok)
					got = append(got, msg)
				}
				require.ElementsMatch(t, []string{"chat:someone-else", "state"}, got)
			},
		},
		{
			name: "publishing without subscribers is a no-op",
			testFunc: func(_ *testing.T, b *broker.ChannelBroker[string]) {
				b.Publish("nobody listens")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := broker.NewChannelBroker[string]()
			go b.Start()
			defer b.Stop()
			tt.testFunc(t, b)
		})
	}
}

func TestChannelBroker_Stop(t *testing.T) {
	b := broker.NewChannelBroker[int]()
	go b.Start()
	c, unsubscribe := b.Subscribe()
	b.Stop()

	_, ok := receive(t, c)
	require.False(t, ok, "subscribers are closed when the broker stops")
	unsubscribe()
	b.Publish(1)

	late, _ := b.Subscribe()
	_, ok = receive(t, late)
	require.False(t, ok)
}
