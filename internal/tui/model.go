// Package tui is the terminal front end: it turns key presses into session
// events and draws the current item, its labels and the log tail.
package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Syuf1514/video-labeler/internal/engine"
	"github.com/Syuf1514/video-labeler/internal/logging"
	"github.com/Syuf1514/video-labeler/internal/player"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddLabel
	modeRemoveLabels
	modeSource
)

// Options configure the front end.
type Options struct {
	// LogPath is the log file shown in the log panel.
	LogPath string
	// TailLines is how many log lines the panel shows.
	TailLines int
	Log       logrus.FieldLogger
}

// Model is the bubbletea model driving one session.
type Model struct {
	session *engine.Session
	player  player.Player
	opts    Options

	keys  keyMap
	help  help.Model
	input textinput.Model
	mode  mode

	seq       uint64
	res       types.Result
	status    string
	statusErr bool
	showLog   bool
	logLines  []string
	shown     string

	width  int
	height int
}

// New returns a model over s. p shows each item's video; nil means no
// playback.
func New(s *engine.Session, p player.Player, opts Options) Model {
	if p == nil {
		p = player.Nop{}
	}
	if opts.TailLines <= 0 {
		opts.TailLines = logging.DefaultTailLines
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	in := textinput.New()
	in.CharLimit = 512
	m := Model{
		session: s,
		player:  p,
		opts:    opts,
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   in,
		res:     s.Current(),
	}
	m.showCurrent()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(s *engine.Session, p player.Player, opts Options) error {
	m := New(s, p, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		_ = m.player.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.showLog = !m.showLog
		m.refreshLog()
		return m, nil
	case msg.Type == tea.KeyRunes && string(msg.Runes) == "n":
		res, err := m.session.Advance()
		m.apply(res, err, "")
	case msg.Type == tea.KeyRunes && string(msg.Runes) == "p":
		res, err := m.session.Retreat()
		m.apply(res, err, "")
	case key.Matches(msg, m.keys.Flip):
		spec := m.res.Sort
		spec.Direction = spec.Direction.Flip()
		res, err := m.session.SetSortSpec(spec)
		m.apply(res, err, "sorted by "+spec.String())
	case key.Matches(msg, m.keys.CycleSort):
		spec := m.res.Sort
		spec.Key = nextColumn(m.session.Columns(), spec.Key)
		res, err := m.session.SetSortSpec(spec)
		m.apply(res, err, "sorted by "+spec.String())
	case key.Matches(msg, m.keys.Reload):
		res, err := m.session.Reload()
		m.apply(res, err, "reloaded")
	case key.Matches(msg, m.keys.AddLabel):
		return m.prompt(modeAddLabel, "new label name", "")
	case key.Matches(msg, m.keys.RmLabels):
		return m.prompt(modeRemoveLabels, "labels to remove, comma separated", "")
	case key.Matches(msg, m.keys.Source):
		return m.prompt(modeSource, "path to a CSV table", m.res.Source)
	default:
		k, ok := eventKey(msg)
		if !ok {
			return m, nil
		}
		m.seq++
		res, err := m.session.HandleEvent(types.Event{Key: k, Seq: m.seq})
		m.apply(res, err, "")
	}
	return m, nil
}

func (m Model) prompt(md mode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		md := m.mode
		m.mode = modeBrowse
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		switch md {
		case modeAddLabel:
			res, err := m.session.AddLabel(value)
			m.apply(res, err, "added label "+value)
		case modeRemoveLabels:
			names := splitNames(value)
			res, err := m.session.RemoveLabels(names...)
			m.apply(res, err, "removed "+strings.Join(names, ", "))
		case modeSource:
			res, err := m.session.SetSourcePath(value)
			m.apply(res, err, "opened "+value)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply records an action's outcome: the new cursor and item, a status
// line, the log tail, and the video shown.
func (m *Model) apply(res types.Result, err error, ok string) {
	switch {
	case errors.Is(err, types.ErrBusy):
		m.setStatus("still saving, try again", true)
		return
	case err != nil:
		m.setStatus(err.Error(), true)
		m.res = m.session.Current()
	case res.SaveErr != nil:
		m.res = res
		m.setStatus(fmt.Sprintf("not saved: %v", res.SaveErr), true)
	default:
		m.res = res
		m.setStatus(ok, false)
	}
	m.refreshLog()
	m.showCurrent()
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) refreshLog() {
	if !m.showLog || m.opts.LogPath == "" {
		return
	}
	lines, err := logging.Tail(m.opts.LogPath, m.opts.TailLines)
	if err != nil {
		m.logLines = []string{err.Error()}
		return
	}
	m.logLines = lines
}

// showCurrent hands the current item to the player when it changed.
func (m *Model) showCurrent() {
	if m.res.Item == nil || m.res.Item.ID == m.shown {
		return
	}
	m.shown = m.res.Item.ID
	if err := m.player.Show(m.shown); err != nil {
		m.opts.Log.WithError(err).WithField("item", m.shown).Warn("cannot play video")
		if m.status == "" || !m.statusErr {
			m.setStatus(err.Error(), true)
		}
	}
}

// nextColumn returns the column after current, wrapping around.
func nextColumn(columns []string, current string) string {
	if len(columns) == 0 {
		return current
	}
	i := slices.Index(columns, current)
	return columns[(i+1)%len(columns)]
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
