// Package cli holds the wiring shared by the patchbay command tree:
// backend construction from flags, discovery store selection, and
// signal-aware contexts for long-running commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tobheim/patchbay/internal/adapters/file"
	"github.com/tobheim/patchbay/internal/adapters/httpbackend"
	"github.com/tobheim/patchbay/internal/adapters/redis"
	"github.com/tobheim/patchbay/internal/logging"
	"github.com/tobheim/patchbay/pkg/discovery"
	"github.com/tobheim/patchbay/pkg/ports"
)

// ConnectFlags carry how a command reaches a device and where discovered
// devices are remembered.
type ConnectFlags struct {
	// Address is a direct ip[:port]; when set it wins over Device.
	Address string

	// Device is a serial or name resolved through the discovery store.
	Device string

	// StorePath is the file discovery store directory.
	StorePath string

	// RedisAddr, when set, switches the discovery store to redis.
	RedisAddr string

	// LogLevel enables structured logging on stderr at the named level;
	// empty keeps commands silent.
	LogLevel string
}

// Logger builds the command logger.
func (f ConnectFlags) Logger() *slog.Logger {
	if f.LogLevel == "" {
		return logging.NewNop()
	}
	return logging.New(logging.ParseLevel(f.LogLevel))
}

// Store selects the discovery store: redis when an address was given,
// else the per-user file store.
func (f ConnectFlags) Store() ports.DiscoveryStore {
	if f.RedisAddr != "" {
		return redis.New(f.RedisAddr, "", 0)
	}
	return file.New(f.StorePath)
}

// Backend resolves the target device and builds an HTTP backend for it.
func (f ConnectFlags) Backend(ctx context.Context) (*httpbackend.Client, error) {
	address := f.Address
	if address == "" {
		if f.Device == "" {
			return nil, fmt.Errorf("no device given: pass --address or --device")
		}
		reg := discovery.NewRegistry(f.Store())
		info, err := reg.Resolve(ctx, f.Device)
		if err != nil {
			return nil, fmt.Errorf("resolve device %q: %w", f.Device, err)
		}
		address = info.Address
		if info.Port != 0 {
			address = fmt.Sprintf("%s:%d", info.Address, info.Port)
		}
	}
	return httpbackend.New(address, httpbackend.WithLogger(f.Logger())), nil
}

// SignalContext is a context cancelled by SIGINT or SIGTERM that remembers
// which signal fired.
type SignalContext struct {
	context.Context
	Cancel func()

	mu     sync.Mutex
	sigVal os.Signal
}

// NewSignalContext creates a context cancelled on SIGINT or SIGTERM.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-ctx.Done():
		}
	}()

	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}
