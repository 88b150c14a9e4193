package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/kart-io/logger"
)

// DNCList is a do-not-call registry backed by a newline-delimited file.
// The file is re-read when it changes on disk, so additions take effect
// without a restart. An empty path yields an empty, add-only list.
type DNCList struct {
	mu      sync.RWMutex
	numbers map[string]struct{}
	path    string
	watcher *fsnotify.Watcher
}

// NewDNCList loads the registry from path and starts watching it.
func NewDNCList(path string) (*DNCList, error) {
	l := &DNCList{
		numbers: make(map[string]struct{}),
		path:    path,
	}

	if path == "" {
		return l, nil
	}

	if err := l.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create dnc watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch dnc file: %w", err)
	}
	l.watcher = watcher

	go l.watch()
	return l, nil
}

func (l *DNCList) watch() {
	for {
		select {
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := l.reload(); err != nil {
					logger.Errorw("Failed to reload DNC file", "path", l.path, "error", err)
					continue
				}
				logger.Infow("DNC list reloaded", "path", l.path, "entries", l.Len())
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorw("DNC watcher error", "error", err)
		}
	}
}

func (l *DNCList) reload() error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("failed to open dnc file: %w", err)
	}
	defer f.Close()

	numbers := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		numbers[NormalizePhone(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read dnc file: %w", err)
	}

	l.mu.Lock()
	l.numbers = numbers
	l.mu.Unlock()
	return nil
}

// Contains reports whether phone is on the registry.
func (l *DNCList) Contains(phone string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.numbers[NormalizePhone(phone)]
	return ok
}

// Add puts phone on the registry in memory. The backing file is not
// rewritten; persistence is the file owner's concern.
func (l *DNCList) Add(phone string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.numbers[NormalizePhone(phone)] = struct{}{}
}

// Len returns the number of registered phone numbers.
func (l *DNCList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.numbers)
}

// Close stops watching the backing file.
func (l *DNCList) Close() error {
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}

// NormalizePhone strips spaces, dashes, and parentheses so lookups match
// regardless of formatting. The leading + is preserved.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		switch r {
		case ' ', '-', '(', ')', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
