package assistant

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "user1",
	}

	hub.register <- client

	msg := outboundPayload{Action: "reply", Content: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: "user1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 1), Room: "userA"}
	b := &Client{Send: make(chan []byte, 1), Room: "userB"}
	hub.register <- a
	hub.register <- b

	hub.broadcast <- broadcastMsg{Room: "userA", Data: []byte("ping")}

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("room member did not receive broadcast")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("other room received broadcast: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
