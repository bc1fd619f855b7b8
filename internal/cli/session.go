package cli

import (
	"errors"
	"fmt"

	"github.com/Syuf1514/video-labeler/internal/engine"
	"github.com/Syuf1514/video-labeler/internal/logging"
	"github.com/Syuf1514/video-labeler/internal/store"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

// openSession opens the log file and restores the session from the
// snapshot. With requireSource false a session whose source is unset or
// fails to load is still returned, so the operator can pick another one.
func (a *app) openSession(requireSource bool) (*engine.Session, error) {
	if err := a.openLog(); err != nil {
		return nil, err
	}
	s, err := engine.New(a.cfg.engineConfig(), store.New(a.log), a.log)
	if err != nil {
		return nil, err
	}
	if err := s.Restore(); err != nil {
		if requireSource || errors.Is(err, types.ErrPersistence) {
			if errors.Is(err, types.ErrNoSource) {
				return nil, fmt.Errorf("%w: run `labeler source <file.csv>` or set `table` in config.yaml", err)
			}
			return nil, err
		}
	}
	return s, nil
}

func (a *app) openLog() error {
	if a.log != nil {
		return nil
	}
	log, closer, err := logging.Open(a.cfg.logPath, a.cfg.logLevel)
	if err != nil {
		return sysErrorf("open log: %w", err)
	}
	a.log = log
	a.logClose = closer
	return nil
}
