package lab3d

import (
	"context"
	"github.com/Yeicor/lab3d/internal"
	"github.com/cenkalti/backoff/v5"
	"log"
	"net"
	"net/rpc"
	"os"
	"time"
)

// RemoteBridge implements Bridge by calling a remote implementation (using Go's net/rpc), see ServeBridge.
type RemoteBridge struct {
	cl *rpc.Client
}

// DialBridge connects to a bridge served by ServeBridge, retrying with exponential backoff until ctx is done or
// maxWait elapses (the viewer process may still be starting).
func DialBridge(ctx context.Context, network, addr string, maxWait time.Duration) (*RemoteBridge, error) {
	cl, err := backoff.Retry(ctx, func() (*rpc.Client, error) {
		return rpc.Dial(network, addr)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxWait),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Println("[lab3d] Remote bridge not available, retrying in", next, "-", err)
		}))
	if err != nil {
		return nil, err
	}
	return &RemoteBridge{cl: cl}, nil
}

// NewRemoteBridge wraps an already connected client.
func NewRemoteBridge(client *rpc.Client) *RemoteBridge {
	return &RemoteBridge{cl: client}
}

func (d *RemoteBridge) Upload(frame *Frame) error {
	var ignoreMe int
	return d.cl.Call("BridgeService.Upload", frame, &ignoreMe)
}

// Last returns the last frame the remote side accepted.
func (d *RemoteBridge) Last() (*Frame, error) {
	var out Frame
	err := d.cl.Call("BridgeService.Last", 0, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Shutdown asks the remote process to stop (see the done channel of ServeBridge).
func (d *RemoteBridge) Shutdown(timeout time.Duration) error {
	var out int
	return d.cl.Call("BridgeService.Shutdown", &timeout, &out)
}

func (d *RemoteBridge) Close() error {
	return d.cl.Close()
}

// ServeBridge exposes impl to RemoteBridge clients connecting to l. It blocks until l is closed.
// A remote Shutdown request is forwarded to done (may be nil to refuse them).
func ServeBridge(l net.Listener, impl Bridge, done chan os.Signal) {
	internal.NewBridgeService(impl, done).Accept(l)
}
