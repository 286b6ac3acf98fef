// Package commands holds named commands and runs command lines against them.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/gotags/internal/logger"
)

// Func is a command body. It receives the words after the command name.
type Func = func(args []string) error

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrEmptyCommand   = errors.New("empty command line")
)

// Error is a failure returned by a command function.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("executing command '%s': %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Registry maps command names to functions.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Func)}
}

// Register adds a command. Names are unique.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("invalid command name %q", name)
	}
	if fn == nil {
		return fmt.Errorf("command '%s' has no function", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	r.commands[name] = fn
	logger.DebugTagf("commands", "registered command '%s'", name)
	return nil
}

// Lookup returns the command registered as name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.commands[name]
	return fn, ok
}

// Names lists the registered commands in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse splits a command line into a name and its arguments. A leading ':'
// is accepted.
func Parse(cmdline string) (string, []string, error) {
	parts := strings.Fields(strings.TrimPrefix(strings.TrimSpace(cmdline), ":"))
	if len(parts) == 0 {
		return "", nil, ErrEmptyCommand
	}
	return parts[0], parts[1:], nil
}

// Execute parses cmdline and runs the named command.
func (r *Registry) Execute(cmdline string) error {
	name, args, err := Parse(cmdline)
	if err != nil {
		return err
	}
	fn, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	logger.Debugf("executing command '%s' with args %v", name, args)
	if err := fn(args); err != nil {
		return &Error{Name: name, Err: err}
	}
	return nil
}
