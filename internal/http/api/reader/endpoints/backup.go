package endpoints

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api"
	"github.com/Nixie-Tech-LLC/rafiq/internal/http/api/reader/packets"
	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
	"github.com/Nixie-Tech-LLC/rafiq/internal/session"
	"github.com/Nixie-Tech-LLC/rafiq/internal/storage"
)

type BackupController struct {
	sessions *session.Manager
	storage  storage.Storage
}

// BackupModule mounts POST /reader/backup, which exports the reader's full
// state as a gzipped JSON document.
func BackupModule(sessions *session.Manager, store storage.Storage) api.Module {
	ctl := &BackupController{sessions: sessions, storage: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/reader/backup", ctl.createBackup)
	})
}

// POST /api/reader/backup
func (b *BackupController) createBackup(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var state model.ReaderState
	err := b.sessions.View(ctx.Request.Context(), user.ID, func(s *session.Session) error {
		state = s.Snapshot()
		return nil
	})
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}

	now := time.Now().UTC()
	state.UpdatedAt = now
	data, err := EncodeBackup(state)
	if err != nil {
		return nil, toAPIError(err, user.ID)
	}

	location, err := b.storage.SaveFile(data, fmt.Sprintf("reader_%d_state.gz", user.ID))
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("[backup] could not store backup")
		return nil, api.Internal("could not store backup")
	}
	log.Info().Int("user_id", user.ID).Int("bytes", len(data)).Msg("[backup] stored")

	return packets.BackupResponse{Location: location, CreatedAt: now.Format(time.RFC3339)}, nil
}

// EncodeBackup gzips the indented JSON form of state.
func EncodeBackup(state model.ReaderState) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress backup: %w", err)
	}
	return buf.Bytes(), nil
}
