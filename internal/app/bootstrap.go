package app

import (
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow/internal/config"
	"github.com/taskflow/taskflow/internal/storage"
	"github.com/taskflow/taskflow/internal/store"
)

// OpenStore opens the record store and loads the entity collections.
// The caller owns the returned storage handle and must close it.
func OpenStore(cfg *config.Config, logger zerolog.Logger) (*store.Store, *storage.Store, error) {
	st, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.DatabasePath()).Msg("open storage")
		return nil, nil, err
	}

	entities, err := store.Open(st)
	if err != nil {
		logger.Error().Err(err).Msg("load collections")
		st.Close()
		return nil, nil, err
	}

	logger.Debug().
		Int("tasks", len(entities.Tasks())).
		Int("projects", len(entities.Projects())).
		Msg("collections loaded")

	return entities, st, nil
}
