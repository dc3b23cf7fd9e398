package live

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10)}
	hub.Register(client)

	hub.Broadcast([]byte(`{"number":"A1B2C3D4E5"}`))

	select {
	case got := <-client.Send:
		if string(got) != `{"number":"A1B2C3D4E5"}` {
			t.Fatalf("got %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for broadcast")
	}

	hub.Unregister(client)

	// Send channel closes on unregister so the writer pump drains out.
	select {
	case _, open := <-client.Send:
		if open {
			t.Fatal("expected closed channel after unregister")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{Send: make(chan []byte)} // unbuffered, never read
	fast := &Client{Send: make(chan []byte, 10)}
	hub.Register(slow)
	hub.Register(fast)

	hub.Broadcast([]byte("one"))
	hub.Broadcast([]byte("two"))

	// The fast client still gets both messages.
	for _, want := range []string{"one", "two"} {
		select {
		case got := <-fast.Send:
			if string(got) != want {
				t.Fatalf("got %s, want %s", got, want)
			}
		case <-time.After(1 * time.Second):
			t.Fatal("timeout waiting for broadcast")
		}
	}
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.Stop()

	select {
	case _, open := <-client.Send:
		if open {
			t.Fatal("expected closed channel after stop")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for shutdown close")
	}
}
