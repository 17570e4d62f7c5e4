package lab3d

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
	"log"
	"os"
	"path/filepath"
	"time"
)

// tuningFile is the on-disk representation of Tuning. Absent keys keep the previous value.
type tuningFile struct {
	Sensitivity *float64 `json:"sensitivity"`
	MoveStep    *float64 `json:"moveStep"`
	WheelStep   *float64 `json:"wheelStep"`
	TickMillis  *int     `json:"tickMillis"`
}

// maxTickMillis bounds tickMillis well below time.Duration overflow.
const maxTickMillis = int(time.Hour / time.Millisecond)

var errBadTickMillis = fmt.Errorf("tickMillis must be in (0, %d]", maxTickMillis)

// parseTuning applies the JSON document on top of base.
func parseTuning(data []byte, base Tuning) (Tuning, error) {
	var f tuningFile
	if err := json.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("parse tuning: %w", err)
	}
	res := base
	if f.Sensitivity != nil {
		res.Sensitivity = *f.Sensitivity
	}
	if f.MoveStep != nil {
		res.MoveStep = *f.MoveStep
	}
	if f.WheelStep != nil {
		res.WheelStep = *f.WheelStep
	}
	if f.TickMillis != nil {
		if *f.TickMillis <= 0 || *f.TickMillis > maxTickMillis {
			return base, errBadTickMillis
		}
		res.TickInterval = time.Duration(*f.TickMillis) * time.Millisecond
	}
	return res, nil
}

// loadTuning reads and parses the file, retrying for a short while: editors may leave it empty or half-written
// right when the change notification arrives.
func loadTuning(ctx context.Context, path string, base Tuning) (Tuning, error) {
	res := base
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(25*time.Millisecond), 8), ctx)
	err := backoff.Retry(func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return backoff.Permanent(err)
			}
			return err
		}
		res, err = parseTuning(data, base)
		if errors.Is(err, errBadTickMillis) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
	return res, err
}

// watch loads the tuning file (if configured) and keeps reloading it in the background until ctx is done.
// Reloaded values are handed to the tick loop through s.tuningUpdates, so the mapper is only touched by Advance.
func (s *Session) watch(ctx context.Context) error {
	if s.watchTuning == "" {
		return nil
	}
	path := filepath.Clean(s.watchTuning)
	t, err := loadTuning(ctx, path, s.mapper.Tuning)
	if err != nil {
		return err
	}
	s.mapper.Tuning = t
	watcher, err := newDirWatcher(filepath.Dir(path))
	if err != nil {
		log.Println("[lab3d] Tuning file will not be reloaded:", err)
		return nil
	}
	go func() {
		defer watcher.Close()
		latest := t
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				reloaded, err := loadTuning(ctx, path, latest)
				if err != nil {
					log.Println("[lab3d] Error reloading tuning file:", err)
					continue
				}
				latest = reloaded
				select { // Keep only the newest pending update
				case <-s.tuningUpdates:
				default:
				}
				s.tuningUpdates <- reloaded
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("[lab3d] Tuning watcher error:", err)
			}
		}
	}()
	return nil
}
