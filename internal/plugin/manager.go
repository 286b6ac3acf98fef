package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/gotags/internal/logger"
)

// Manager handles registration and the lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
}

// NewManager creates an empty plugin manager.
func NewManager() *Manager {
	return &Manager{plugins: make(map[string]Plugin)}
}

// Register adds a plugin. It must be called before InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}
	m.plugins[name] = p
	m.order = append(m.order, name)
	logger.Debugf("plugin manager: registered plugin '%s'", name)
	return nil
}

func (m *Manager) snapshot() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		list = append(list, m.plugins[name])
	}
	return list
}

// InitializePlugins calls Initialize on every plugin in registration order.
// A failing plugin does not stop the others. The failures are joined.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	var errs []error
	for _, p := range m.snapshot() {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("plugin manager: initializing plugin '%s': %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("plugin '%s': %w", p.Name(), err))
			continue
		}
		logger.Debugf("plugin manager: initialized plugin '%s'", p.Name())
	}
	return errors.Join(errs...)
}

// ShutdownPlugins calls Shutdown on every plugin in reverse order.
func (m *Manager) ShutdownPlugins() {
	list := m.snapshot()
	for i := len(list) - 1; i >= 0; i-- {
		if err := list[i].Shutdown(); err != nil {
			logger.Warnf("plugin manager: shutting down plugin '%s': %v", list[i].Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
