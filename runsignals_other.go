//go:build !linux
// +build !linux

package lab3d

import (
	"os"
)

func signals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
