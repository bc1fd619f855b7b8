// Package player shows the current item's video in an external program.
package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrMissingVideo is returned by Show when the item's file does not exist.
var ErrMissingVideo = errors.New("video file not found")

// Player displays one video at a time.
type Player interface {
	// Show replaces whatever is playing with the video at path.
	Show(path string) error
	// Close stops playback.
	Close() error
}

// New returns an Exec player for command, or Nop when command is blank.
func New(command string, log logrus.FieldLogger) Player {
	p, err := NewExec(command, log)
	if err != nil {
		return Nop{}
	}
	return p
}

// Nop ignores every request.
type Nop struct{}

func (Nop) Show(string) error { return nil }
func (Nop) Close() error      { return nil }

// Exec runs a command line with the video path appended as the last
// argument. Showing a new video stops the previous process.
type Exec struct {
	argv []string
	log  logrus.FieldLogger

	mu  sync.Mutex
	cur *process
}

type process struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// NewExec parses command into an argument list. The command is split on
// whitespace; no shell quoting is applied.
func NewExec(command string, log logrus.FieldLogger) (*Exec, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil, errors.New("player: empty command")
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Exec{argv: argv, log: log}, nil
}

// Show stops the running process, if any, and starts the command on path.
// A missing file is logged and returned as ErrMissingVideo; nothing is
// started.
func (p *Exec) Show(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	if _, err := os.Stat(path); err != nil {
		p.log.WithField("path", path).Error("video file not found")
		return fmt.Errorf("%w: %s", ErrMissingVideo, path)
	}

	args := append(append([]string{}, p.argv[1:]...), path)
	cmd := exec.Command(p.argv[0], args...)
	if err := cmd.Start(); err != nil {
		p.log.WithError(err).WithField("command", p.argv[0]).Error("start player")
		return fmt.Errorf("start player: %w", err)
	}
	proc := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(proc.done)
	}()
	p.cur = proc
	p.log.WithFields(logrus.Fields{"path": path, "pid": cmd.Process.Pid}).Debug("player started")
	return nil
}

// Close stops the running process.
func (p *Exec) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

// Running reports whether a started process has not yet exited.
func (p *Exec) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return false
	}
	select {
	case <-p.cur.done:
		return false
	default:
		return true
	}
}

func (p *Exec) stopLocked() {
	if p.cur == nil {
		return
	}
	select {
	case <-p.cur.done:
	default:
		_ = p.cur.cmd.Process.Kill()
		<-p.cur.done
	}
	p.cur = nil
}
