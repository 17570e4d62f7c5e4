package lab3d

import (
	"context"
	"net"
	"os"
	"sync"
	"testing"
	"time"
)

func TestRemoteBridge(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	var mu sync.Mutex
	var received []Frame
	done := make(chan os.Signal, 1)
	go ServeBridge(l, BridgeFunc(func(frame *Frame) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, *frame)
		return nil
	}), done)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	remote, err := DialBridge(ctx, "tcp", l.Addr().String(), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer remote.Close()

	if _, err = remote.Last(); err == nil {
		t.Fatalf("expected an error before the first upload")
	}

	s := NewSession(remote)
	s.Handle(MouseDown(MouseSecondary))
	s.Handle(MouseMove(3, -4))
	s.Handle(KeyDown(KeyLeft))
	s.Handle(KeyDown(KeyView))
	if err = s.Advance(); err != nil {
		t.Fatal(err)
	}
	last, err := remote.Last()
	if err != nil {
		t.Fatal(err)
	}
	if *last != *frameOf(s.State()) {
		t.Fatalf("the remote frame differs:\n%+v\n%+v", *last, *frameOf(s.State()))
	}
	mu.Lock()
	if len(received) != 1 || received[0] != *last {
		t.Fatalf("unexpected frames received by the implementation: %v", received)
	}
	mu.Unlock()

	if err = remote.Shutdown(time.Second); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("shutdown was not forwarded")
	}
}

func TestRemoteBridge_ShutdownRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	go ServeBridge(l, BridgeFunc(func(frame *Frame) error { return nil }), nil)
	remote, err := DialBridge(context.Background(), "tcp", l.Addr().String(), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer remote.Close()
	if err = remote.Shutdown(10 * time.Millisecond); err == nil {
		t.Fatalf("expected the shutdown to be refused")
	}
}

func TestDialBridge_GivesUp(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	_ = l.Close() // Nobody listening anymore
	start := time.Now()
	if _, err = DialBridge(context.Background(), "tcp", addr, 200*time.Millisecond); err == nil {
		t.Fatalf("expected a dial error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("took too long to give up: %s", elapsed)
	}
}
