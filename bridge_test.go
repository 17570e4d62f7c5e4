package lab3d

import (
	"errors"
	"testing"
)

func TestMultiBridge(t *testing.T) {
	errA, errB := errors.New("a"), errors.New("b")
	var calls []string
	record := func(name string, err error) Bridge {
		return BridgeFunc(func(frame *Frame) error {
			calls = append(calls, name)
			return err
		})
	}
	m := MultiBridge{record("a", errA), record("ok", nil), record("b", errB)}
	err := m.Upload(&Frame{Tick: 1})
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors, got %v", err)
	}
	if len(calls) != 3 || calls[0] != "a" || calls[1] != "ok" || calls[2] != "b" {
		t.Fatalf("unexpected calls %v", calls)
	}
	if err = (MultiBridge{}).Upload(&Frame{}); err != nil {
		t.Fatalf("an empty bridge list must not fail: %v", err)
	}
}
