package internal

import (
	"errors"
	"github.com/barkimedes/go-deepcopy"
	"log"
	"net/rpc"
	"os"
	"sync"
	"time"
)

// BridgeService is an internal struct that has to be exported for RPC.
// It is the server counterpart to the remote bridge client: it forwards uploaded frames to a local BridgeImpl.
type BridgeService struct {
	impl     BridgeImpl
	lastLock sync.RWMutex
	last     *Frame
	done     chan os.Signal
}

// NewBridgeService see BridgeService
func NewBridgeService(impl BridgeImpl, done chan os.Signal) *rpc.Server {
	server := rpc.NewServer()
	srv := &BridgeService{
		impl: impl,
		done: done,
	}
	err := server.Register(srv)
	if err != nil {
		panic(err) // Shouldn't happen (only on bad implementation)
	}
	return server
}

// Upload is an internal method that has to be exported for RPC.
func (d *BridgeService) Upload(frame Frame, _ *int) error {
	err := d.impl.Upload(&frame)
	if err != nil {
		log.Println("[lab3d] BridgeService.Upload error:", err)
		return err
	}
	d.lastLock.Lock()
	d.last = &frame
	d.lastLock.Unlock()
	return nil
}

var errNoFrameUploaded = errors.New("no frame uploaded yet")

// Last is an internal method that has to be exported for RPC.
// Last returns a copy of the last frame successfully uploaded.
func (d *BridgeService) Last(_ int, out *Frame) error {
	d.lastLock.RLock()
	defer d.lastLock.RUnlock()
	if d.last == nil {
		return errNoFrameUploaded
	}
	*out = *deepcopy.MustAnything(d.last).(*Frame)
	return nil
}

// Shutdown is an internal method that has to be exported for RPC.
// Shutdown sends a signal on the configured channel (with a timeout)
func (d *BridgeService) Shutdown(t time.Duration, _ *int) error {
	if d.done == nil {
		return errors.New("shutdown not supported")
	}
	select {
	case d.done <- os.Interrupt:
		return nil
	case <-time.After(t):
		return errors.New("shutdown timeout")
	}
}
