package gotags

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/gotags/internal/buffer"
	"github.com/bethropolis/gotags/internal/commands"
	"github.com/bethropolis/gotags/internal/event"
	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/plugin"
	"github.com/bethropolis/gotags/internal/syntax"
	"github.com/bethropolis/gotags/internal/types"
)

// fakeAPI is a minimal host for one buffer.
type fakeAPI struct {
	buf      *buffer.TextBuffer
	settings map[string]interface{}
	registry *commands.Registry
	events   *event.Manager
	status   string
	pick     int
}

func newFakeAPI(path, src string, settings map[string]interface{}) *fakeAPI {
	return &fakeAPI{
		buf:      buffer.FromBytes(path, []byte(src)),
		settings: settings,
		registry: commands.NewRegistry(),
		events:   event.NewManager(),
		pick:     -1,
	}
}

func (f *fakeAPI) GetBufferFilePath() string   { return f.buf.FilePath() }
func (f *fakeAPI) IsBufferModified() bool      { return f.buf.IsModified() }
func (f *fakeAPI) GetBufferBytes() []byte      { return f.buf.Bytes() }
func (f *fakeAPI) GetBuffer() buffer.Buffer    { return f.buf }
func (f *fakeAPI) GetSelections() []types.Span { return []types.Span{{Begin: 0, End: f.buf.Size()}} }
func (f *fakeAPI) SaveBuffer() error           { return nil }

func (f *fakeAPI) GetFieldStats() (syntax.FieldStats, error) { return syntax.FieldStats{}, nil }
func (f *fakeAPI) ExecuteCommand(c string) error             { return f.registry.Execute(c) }

func (f *fakeAPI) DispatchEvent(t event.Type, data interface{})  { f.events.Dispatch(t, data) }
func (f *fakeAPI) SubscribeEvent(t event.Type, h event.Handler)  { f.events.Subscribe(t, h) }
func (f *fakeAPI) ShowQuickPanel(_ []string, onSelect func(int)) { onSelect(f.pick) }

func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	return f.registry.Register(name, fn)
}

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.status = fmt.Sprintf(format, args...)
}

func (f *fakeAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	if pluginName != Name {
		return nil, false
	}
	v, ok := f.settings[key]
	return v, ok
}

func initialized(t *testing.T, api *fakeAPI) *GoTags {
	t.Helper()
	p := New().(*GoTags)
	require.NoError(t, p.Initialize(api))
	return p
}

func TestInitializeRegistersCommands(t *testing.T) {
	api := newFakeAPI("a.go", "", nil)
	p := initialized(t, api)

	assert.Equal(t, []string{MenuCommand, ApplyCommand}, api.registry.Names())
	require.Len(t, p.Actions(), 6)
	assert.Equal(t, "orm", p.Actions()[2].Family.Key)

	assert.Error(t, New().Initialize(api), "second registration of the same commands")
}

func TestSettings(t *testing.T) {
	api := newFakeAPI("a.go", "type A struct {\n\tID int64\n\tN string\n\tF float64\n}\n", map[string]interface{}{
		"orm_tag": "gorm",
		"orm_types": map[string]interface{}{
			"int64":   "bigint",
			"string":  "text",
			"float64": 8,
		},
	})
	initialized(t, api)

	require.NoError(t, api.ExecuteCommand("gotags-apply orm-add"))
	assert.Equal(t, "type A struct {\n\tID\tint64`gorm:\"bigint\"`\n\tN\tstring`gorm:\"text\"`\n\tF\tfloat64`gorm:\"\"`\n}\n",
		string(api.buf.Bytes()))
}

func TestInvalidSettingsFallBack(t *testing.T) {
	api := newFakeAPI("a.go", "type A struct {\n\tID int64\n}\n", map[string]interface{}{
		"orm_tag":   "",
		"orm_types": []string{"nope"},
		"debug":     "yes",
	})
	p := initialized(t, api)
	assert.Equal(t, "orm", p.ormKey)
	assert.False(t, p.debug)

	require.NoError(t, api.ExecuteCommand("gotags-apply orm-add"))
	assert.Contains(t, string(api.buf.Bytes()), "\tID\tint64`orm:\"\"`\n")
}

func TestDebugRaisesLogLevel(t *testing.T) {
	logger.Init(logger.Config{LogLevel: "warn"}, nil)
	t.Cleanup(func() { logger.Init(logger.NewConfig(), nil) })

	initialized(t, newFakeAPI("a.go", "", map[string]interface{}{"debug": true}))
	assert.Equal(t, slog.LevelDebug, logger.Level())
}

func TestMenuRunsPickedAction(t *testing.T) {
	api := newFakeAPI("a.go", "type A struct {\n\tUserID int64\n}\n", nil)
	initialized(t, api)

	var got []event.TagsRewrittenData
	api.SubscribeEvent(event.TypeTagsRewritten, func(e event.Event) bool {
		got = append(got, e.Data.(event.TagsRewrittenData))
		return false
	})

	api.pick = 0
	require.NoError(t, api.ExecuteCommand("gotags"))
	assert.Equal(t, "type A struct {\n\tUserID\tint64`json:\"user_i_d\"`\n}\n", string(api.buf.Bytes()))
	assert.Equal(t, "GoTags: JSON: Append tags, 1 field(s) in 1 struct(s)", api.status)

	require.NoError(t, api.ExecuteCommand("gotags"))
	assert.Equal(t, "GoTags: JSON: Append tags, nothing to change", api.status)

	api.pick = -1
	require.NoError(t, api.ExecuteCommand("gotags"))
	assert.Len(t, got, 2, "dismissed menu runs nothing")
}

func TestNoStruct(t *testing.T) {
	api := newFakeAPI("a.go", "package a\n", nil)
	initialized(t, api)

	require.NoError(t, api.ExecuteCommand("gotags-apply xml-remove"))
	assert.Equal(t, "GoTags: no struct in selection", api.status)
}

func TestRefusesOtherFiles(t *testing.T) {
	api := newFakeAPI("a.py", "type A struct {\n\tB int\n}\n", nil)
	initialized(t, api)

	require.NoError(t, api.ExecuteCommand("gotags"))
	assert.Equal(t, "GoTags Error: GoTags works only in .go file", api.status)
	assert.False(t, api.buf.IsModified())
}
