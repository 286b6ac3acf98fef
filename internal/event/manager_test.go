package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchInOrder(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "first:"+e.Data.(BufferSavedData).FilePath)
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "second")
		return false
	})
	m.Subscribe(TypeBufferLoaded, func(e Event) bool {
		got = append(got, "loaded")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "a.go"})
	assert.Equal(t, []string{"first:a.go", "second"}, got)
}

func TestDispatchStopsWhenConsumed(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeCommandExecuted, func(Event) bool { calls++; return true })
	m.Subscribe(TypeCommandExecuted, func(Event) bool { calls++; return false })

	m.Dispatch(TypeCommandExecuted, CommandExecutedData{Name: "gotags"})
	assert.Equal(t, 1, calls)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	assert.NotPanics(t, func() { NewManager().Dispatch(TypeAppQuit, nil) })
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "TagsRewritten", TypeTagsRewritten.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
