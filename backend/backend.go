// Package backend provides a scheme-keyed registry of transfer backends.
// Source backends produce shuttle.Source implementations (object stores,
// file servers) and sink backends produce shuttle.Sink implementations
// (file-share protocols). Backends register a default instance in their
// init(); callers that need credentials or other options re-register a
// configured instance before opening.
package backend

import (
	"context"
	"sort"
	"sync"

	"github.com/shuttlefs/shuttle"
)

// SourceOpener opens a shuttle.Source for a URI handled by its scheme.
type SourceOpener interface {
	OpenSource(ctx context.Context, uri string) (shuttle.Source, error)
}

// SinkOpener opens a shuttle.Sink for a URI handled by its scheme.
type SinkOpener interface {
	OpenSink(ctx context.Context, uri string) (shuttle.Sink, error)
}

var mmu sync.RWMutex
var sources map[string]SourceOpener
var sinks map[string]SinkOpener

// RegisterSource registers a source backend for a scheme, replacing any
// previous registration.
func RegisterSource(scheme string, o SourceOpener) {
	mmu.Lock()
	sources[scheme] = o
	mmu.Unlock()
}

// RegisterSink registers a sink backend for a scheme, replacing any previous
// registration.
func RegisterSink(scheme string, o SinkOpener) {
	mmu.Lock()
	sinks[scheme] = o
	mmu.Unlock()
}

// UnregisterAll unregisters all backends.
func UnregisterAll() {
	// mainly for tests
	mmu.Lock()
	sources = make(map[string]SourceOpener)
	sinks = make(map[string]SinkOpener)
	mmu.Unlock()
}

// Source returns the source backend registered for a scheme, or nil.
func Source(scheme string) SourceOpener {
	mmu.RLock()
	defer mmu.RUnlock()
	return sources[scheme]
}

// Sink returns the sink backend registered for a scheme, or nil.
func Sink(scheme string) SinkOpener {
	mmu.RLock()
	defer mmu.RUnlock()
	return sinks[scheme]
}

// SourceSchemes returns the sorted schemes with a registered source backend.
func SourceSchemes() []string {
	var s []string
	mmu.RLock()
	for k := range sources {
		s = append(s, k)
	}
	mmu.RUnlock()
	sort.Strings(s)
	return s
}

// SinkSchemes returns the sorted schemes with a registered sink backend.
func SinkSchemes() []string {
	var s []string
	mmu.RLock()
	for k := range sinks {
		s = append(s, k)
	}
	mmu.RUnlock()
	sort.Strings(s)
	return s
}

func init() {
	sources = make(map[string]SourceOpener)
	sinks = make(map[string]SinkOpener)
}
