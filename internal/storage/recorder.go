package storage

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-lightpath/internal/core"
)

// Event names that also update the progress table.
const (
	eventLevelComplete = "level_complete"
)

// Recorder persists reported events under a single run ID.
// Storage errors are logged and never reach the game.
type Recorder struct {
	store  *Store
	gameID string
	runID  string
	log    *log.Logger
}

// NewRecorder returns a reporter for gameID. A nil store yields a
// core.NopReporter.
func NewRecorder(store *Store, gameID string, logger *log.Logger) core.EventReporter {
	if store == nil {
		return core.NopReporter{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		store:  store,
		gameID: gameID,
		runID:  uuid.NewString(),
		log:    logger.WithPrefix("storage"),
	}
}

// RunID returns the identifier shared by every event of this recorder.
func (r *Recorder) RunID() string {
	return r.runID
}

// ReportEvent implements core.EventReporter.
func (r *Recorder) ReportEvent(name, value string) {
	if _, err := r.store.SaveEvent(r.runID, r.gameID, name, value); err != nil {
		r.log.Warn("event not saved", "event", name, "err", err)
		return
	}
	if name == eventLevelComplete && value != "" {
		if err := r.store.MarkSolved(r.gameID, value); err != nil {
			r.log.Warn("progress not saved", "level", value, "err", err)
		}
	}
}
