// Package dispatch owns the process-wide target state: the detected host,
// the once-initialized JIT target list, and variant selection for
// precompiled images. One Engine is constructed at startup and passed to
// every consumer; there are no package-level singletons.
package dispatch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/calyx-lang/calyx/internal/cpudb"
	"github.com/calyx-lang/calyx/internal/hostcpu"
	"github.com/calyx-lang/calyx/internal/logger"
	"github.com/calyx-lang/calyx/internal/target"
)

var (
	// ErrAlreadyInitialized means the JIT target list was set twice; a
	// configuration error, never retried or overwritten.
	ErrAlreadyInitialized = errors.New("dispatch: jit target list already initialized")
	// ErrNotInitialized means a caller needed the JIT target list before
	// any runtime image was selected.
	ErrNotInitialized = errors.New("dispatch: jit target list not initialized")
)

// Engine is the process-wide dispatch context.
type Engine struct {
	db   *cpudb.DB
	host *hostcpu.Host
	log  logger.Logger

	mu  sync.Mutex
	jit []target.Data
}

// New builds an engine over a catalog. Host detection stays lazy until
// something asks for it.
func New(db *cpudb.DB, log logger.Logger) *Engine {
	return &Engine{db: db, host: hostcpu.New(db), log: log}
}

// NewWithHost builds an engine over an explicit host handle; used when the
// caller injects detection inputs.
func NewWithHost(db *cpudb.DB, host *hostcpu.Host, log logger.Logger) *Engine {
	return &Engine{db: db, host: host, log: log}
}

// HostCPUName returns the detected host model name.
func (e *Engine) HostCPUName() string {
	return e.host.Name()
}

// HostSupports reports whether the host has a named feature.
func (e *Engine) HostSupports(feature string) bool {
	return e.host.Supports(feature)
}

// Host returns the memoized host detection handle.
func (e *Engine) Host() *hostcpu.Host {
	return e.host
}

// ResolveSpec parses and resolves a target specification against the host
// without touching engine state. The first target is host-locked.
func (e *Engine) ResolveSpec(spec string) ([]target.Data, error) {
	targets, err := target.ParseList(e.db, spec)
	if err != nil {
		return nil, err
	}
	name, features := e.host.CPU()
	target.ResolveList(e.db, name, features, targets)
	return targets, nil
}

// SelectRuntimeImage resolves the configured target specification, decodes
// the image's embedded target list, picks the variant to run, and installs
// the pared runtime target as the JIT target list. Selecting twice is a
// configuration error; a rejected image is an error, never silently
// defaulted to some variant.
func (e *Engine) SelectRuntimeImage(blob []byte, spec string) (target.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.jit != nil {
		return target.Match{}, ErrAlreadyInitialized
	}

	resolved, err := e.resolveLocked(spec)
	if err != nil {
		return target.Match{}, err
	}
	candidates, err := target.DecodeList(blob)
	if err != nil {
		return target.Match{}, fmt.Errorf("runtime image: %w", err)
	}
	m, err := target.MatchList(e.db.Arch, resolved[0], candidates)
	if err != nil {
		return target.Match{}, fmt.Errorf("runtime image: %w", err)
	}
	target.PareVecCall(e.db.Arch, &resolved[0], m)

	e.jit = resolved
	e.log.Info("runtime image selected",
		"variant", m.Index,
		"vec_width", m.VecWidth,
		"cpu", resolved[0].Name)
	return m, nil
}

// SelectPluginImage picks a variant of a plugin image against the already
// installed runtime target.
func (e *Engine) SelectPluginImage(blob []byte) (target.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.jit == nil {
		return target.Match{}, ErrNotInitialized
	}
	candidates, err := target.DecodeList(blob)
	if err != nil {
		return target.Match{}, fmt.Errorf("plugin image: %w", err)
	}
	m, err := target.MatchList(e.db.Arch, e.jit[0], candidates)
	if err != nil {
		return target.Match{}, fmt.Errorf("plugin image: %w", err)
	}
	return m, nil
}

// JITTargets returns the installed JIT target list.
func (e *Engine) JITTargets() ([]target.Data, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.jit == nil {
		return nil, ErrNotInitialized
	}
	return e.jit, nil
}

// CloneSet is the packaging output for one target specification: the
// resolved targets, the per-target backend lowering, and the serialized
// blob to embed in the image.
type CloneSet struct {
	Targets []target.Data
	Specs   []target.BackendSpec
	Blob    []byte
}

// CloneTargets resolves a packaging specification, applies the clone
// policy and lowers every target for the backend. A target name the
// catalog does not know is fatal here; the backend cannot compile for it.
func (e *Engine) CloneTargets(spec string) (*CloneSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	resolved, err := e.resolveLocked(spec)
	if err != nil {
		return nil, err
	}
	target.ApplyClonePolicy(e.db.Arch, resolved)
	specs, err := target.BackendSpecs(e.db, resolved)
	if err != nil {
		return nil, err
	}
	return &CloneSet{
		Targets: resolved,
		Specs:   specs,
		Blob:    target.EncodeList(resolved),
	}, nil
}

func (e *Engine) resolveLocked(spec string) ([]target.Data, error) {
	targets, err := target.ParseList(e.db, spec)
	if err != nil {
		return nil, err
	}
	name, features := e.host.CPU()
	target.ResolveList(e.db, name, features, targets)
	return targets, nil
}
