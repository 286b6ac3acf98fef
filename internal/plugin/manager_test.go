package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) Initialize(EditorAPI) error {
	*p.log = append(*p.log, "init:"+p.name)
	return p.initErr
}

func (p *fakePlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown:"+p.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&fakePlugin{name: "a", log: &log}))
	require.NoError(t, m.Register(&fakePlugin{name: "b", initErr: errors.New("bad"), log: &log}))
	require.NoError(t, m.Register(&fakePlugin{name: "c", log: &log}))

	err := m.InitializePlugins(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugin 'b': bad")

	m.ShutdownPlugins()
	assert.Equal(t, []string{"init:a", "init:b", "init:c", "shutdown:c", "shutdown:b", "shutdown:a"}, log)
}

func TestManagerRegisterRejects(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&fakePlugin{name: "gotags", log: &log}))
	assert.Error(t, m.Register(&fakePlugin{name: "gotags", log: &log}))
	assert.Error(t, m.Register(&fakePlugin{name: "", log: &log}))

	p, ok := m.GetPlugin("gotags")
	require.True(t, ok)
	assert.Equal(t, "gotags", p.Name())
	_, ok = m.GetPlugin("missing")
	assert.False(t, ok)
}
