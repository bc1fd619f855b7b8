package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syuf1514/video-labeler/internal/engine"
	"github.com/Syuf1514/video-labeler/internal/logging"
	"github.com/Syuf1514/video-labeler/internal/store"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

type recordingPlayer struct {
	shown  []string
	closed bool
}

func (p *recordingPlayer) Show(path string) error {
	p.shown = append(p.shown, path)
	return nil
}

func (p *recordingPlayer) Close() error {
	p.closed = true
	return nil
}

type harness struct {
	m      Model
	player *recordingPlayer
	dir    string
	table  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	table := filepath.Join(dir, "meta.csv")
	require.NoError(t, os.WriteFile(table, []byte("path,good,duration\na.mp4,0,30\nb.mp4,0,10\nc.mp4,0,20\n"), 0o644))

	logPath := filepath.Join(dir, "app.log")
	log, closer, err := logging.Open(logPath, "info")
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })

	cfg := types.Config{IdentityColumn: "path", SnapshotPath: filepath.Join(dir, "state.json"), DefaultTable: table}
	s, err := engine.New(cfg, store.New(log), log)
	require.NoError(t, err)
	require.NoError(t, s.Restore())

	p := &recordingPlayer{}
	return &harness{
		m:      New(s, p, Options{LogPath: logPath, TailLines: 5, Log: log}),
		player: p,
		dir:    dir,
		table:  table,
	}
}

func (h *harness) send(t *testing.T, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = h.m.Update(msg)
		h.m = next.(Model)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(s string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func TestModel_ShowsFirstItemOnStart(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, []string{"a.mp4"}, h.player.shown)
	assert.Contains(t, h.m.View(), "1/3")
}

func TestModel_Navigation(t *testing.T) {
	h := newHarness(t)

	h.send(t, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, h.m.res.Position)
	h.send(t, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 2, h.m.res.Position)
	h.send(t, runes("n"))
	assert.Equal(t, 0, h.m.res.Position)
	h.send(t, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, h.m.res.Position)
	h.send(t, runes("p"))
	assert.Equal(t, 1, h.m.res.Position)

	assert.Equal(t, []string{"a.mp4", "b.mp4", "c.mp4", "a.mp4", "c.mp4", "b.mp4"}, h.player.shown)
}

func TestModel_RepeatedDigitPressesEachToggle(t *testing.T) {
	h := newHarness(t)

	h.send(t, runes("1"))
	require.NotNil(t, h.m.res.Item)
	assert.True(t, h.m.res.Item.Labels[0].Value)
	assert.Contains(t, h.m.View(), "[x] 1. good")

	h.send(t, runes("1"))
	assert.False(t, h.m.res.Item.Labels[0].Value)

	h.send(t, runes("7"))
	assert.False(t, h.m.res.Item.Labels[0].Value)
}

func TestModel_SortKeys(t *testing.T) {
	h := newHarness(t)
	h.send(t, runes("n"))

	h.send(t, runes("o"))
	assert.Equal(t, types.SortSpec{Key: "path", Direction: types.Descending}, h.m.res.Sort)
	assert.Equal(t, 0, h.m.res.Position)
	assert.Equal(t, "c.mp4", h.m.res.Item.ID)

	h.send(t, runes("s"))
	assert.Equal(t, "good", h.m.res.Sort.Key)
	h.send(t, runes("s"), runes("s"))
	assert.Equal(t, "path", h.m.res.Sort.Key)
}

func TestModel_AddAndRemoveLabels(t *testing.T) {
	h := newHarness(t)

	h.send(t, runes("a"))
	assert.Equal(t, modeAddLabel, h.m.mode)
	h.send(t, typeText("blurry")...)
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeBrowse, h.m.mode)
	require.Len(t, h.m.res.Item.Labels, 2)
	assert.Equal(t, "blurry", h.m.res.Item.Labels[1].Name)

	h.send(t, runes("2"))
	assert.True(t, h.m.res.Item.Labels[1].Value)

	h.send(t, runes("x"))
	h.send(t, typeText("good, blurry")...)
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, h.m.res.Item.Labels)
}

func TestModel_AddDuplicateLabelShowsError(t *testing.T) {
	h := newHarness(t)
	h.send(t, runes("a"))
	h.send(t, typeText("good")...)
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, h.m.statusErr)
	assert.Contains(t, h.m.status, types.ErrDuplicateColumn.Error())
}

func TestModel_EscCancelsPrompt(t *testing.T) {
	h := newHarness(t)
	h.send(t, runes("a"))
	h.send(t, typeText("q")...)
	h.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeBrowse, h.m.mode)
	assert.Len(t, h.m.res.Item.Labels, 1)
}

func TestModel_BadSourceKeepsTable(t *testing.T) {
	h := newHarness(t)
	h.send(t, runes("n"))

	h.send(t, runes("f"))
	assert.Equal(t, h.table, h.m.input.Value())
	h.m.input.SetValue(filepath.Join(h.dir, "missing.csv"))
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, h.m.statusErr)
	assert.Equal(t, h.table, h.m.res.Source)
	assert.Equal(t, 1, h.m.res.Position)
}

func TestModel_LogPanel(t *testing.T) {
	h := newHarness(t)
	h.send(t, runes("1"))
	h.send(t, runes("l"))
	assert.True(t, h.m.showLog)
	require.NotEmpty(t, h.m.logLines)
	assert.Contains(t, h.m.View(), "label toggled")
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(t, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, h.player.closed)
}

func TestNextColumn(t *testing.T) {
	cols := []string{"path", "good", "duration"}
	assert.Equal(t, "good", nextColumn(cols, "path"))
	assert.Equal(t, "path", nextColumn(cols, "duration"))
	assert.Equal(t, "path", nextColumn(cols, "gone"))
	assert.Equal(t, "x", nextColumn(nil, "x"))
}
