//go:build freebsd || openbsd || netbsd || dragonfly || darwin || windows || linux || solaris
// +build freebsd openbsd netbsd dragonfly darwin windows linux solaris

package lab3d

import "github.com/fsnotify/fsnotify"

// newDirWatcher watches dir itself: editors often replace files instead of writing to them.
func newDirWatcher(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}
