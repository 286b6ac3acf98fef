package statusbar

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBar() (*StatusBar, *time.Time) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb := New(DefaultConfig())
	sb.now = func() time.Time { return clock }
	return sb, &clock
}

func TestMessageExpires(t *testing.T) {
	sb, clock := newTestBar()
	sb.SetFileInfo("models.go", false)
	sb.SetTemporaryMessage("GoTags Error: %s", "struct unfound")

	msg, ok := sb.Message()
	require.True(t, ok)
	assert.Equal(t, "GoTags Error: struct unfound", msg)

	*clock = clock.Add(3 * time.Second)
	assert.Equal(t, "GoTags Error: struct unfound", sb.Text())

	*clock = clock.Add(time.Millisecond)
	_, ok = sb.Message()
	assert.False(t, ok)
	assert.Equal(t, "models.go", sb.Text())
}

func TestDrainClears(t *testing.T) {
	sb, _ := newTestBar()
	sb.SetFileInfo("", true)
	sb.SetTemporaryMessage("done")

	msg, ok := sb.Drain()
	require.True(t, ok)
	assert.Equal(t, "done", msg)
	_, ok = sb.Drain()
	assert.False(t, ok)
	assert.Equal(t, "[No Name] [Modified]", sb.Text())
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(12, 3)

	sb, _ := newTestBar()
	sb.SetTemporaryMessage("GoTags Error: too long to fit")
	sb.Draw(screen, 12, 3)

	row := ""
	for x := 0; x < 12; x++ {
		r, _, _, _ := screen.GetContent(x, 2)
		row += string(r)
	}
	assert.Equal(t, "GoTags Error", row)

	_, _, style, _ := screen.GetContent(0, 2)
	assert.Equal(t, DefaultConfig().StyleError, style)
}
