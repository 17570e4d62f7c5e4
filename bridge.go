package lab3d

import (
	"errors"
)

// BridgeFunc adapts a function to the Bridge interface.
type BridgeFunc func(frame *Frame) error

// Upload calls f(frame).
func (f BridgeFunc) Upload(frame *Frame) error {
	return f(frame)
}

// MultiBridge uploads every frame to all of its bridges, in order. Every bridge is called even if a previous one
// failed, and all errors are returned joined.
type MultiBridge []Bridge

func (m MultiBridge) Upload(frame *Frame) error {
	var errs []error
	for _, b := range m {
		if err := b.Upload(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
