package main

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/rafiq/internal/config"
	"github.com/Nixie-Tech-LLC/rafiq/internal/storage"
)

// InitStorage selects and returns the configured backup backend
func InitStorage(cfg *config.Config) storage.Storage {
	if cfg.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
			cfg.BackupLinkTTL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("bucket", cfg.SpacesBucket).Msg("storing backups in Spaces")
		return spacesStorage
	}

	log.Info().Str("dir", cfg.BackupDir).Msg("storing backups on local disk")
	return storage.NewLocalStorage(cfg.BackupDir)
}
