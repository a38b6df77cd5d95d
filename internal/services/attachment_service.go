package services

import (
	"context"
	"io"
	"log"

	"ImmoGest/server/internal/models"
	"ImmoGest/server/internal/storage"
	"ImmoGest/server/internal/utils"

	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// UploadFile is one local file handed to the upload pipeline.
type UploadFile struct {
	Name   string
	Size   int64
	Type   string
	Reader io.Reader
}

type AttachmentService struct {
	Store storage.ObjectStore
	Clock clockwork.Clock
}

func NewAttachmentService(store storage.ObjectStore) *AttachmentService {
	return &AttachmentService{
		Store: store,
		Clock: clockwork.NewRealClock(),
	}
}

// UploadAttachments persists each file under
// {basePath}/{millis}_{sanitizedName} and returns one attachment record
// per file, in input order. The record keeps the original display name;
// only the storage key is sanitized. The first backend failure aborts the
// remaining uploads and is propagated, so no file is silently dropped.
func (as *AttachmentService) UploadAttachments(ctx context.Context, basePath string, files []UploadFile) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, len(files))

	for _, file := range files {
		key := utils.ObjectKey(basePath, as.Clock.Now().UnixMilli(), file.Name)

		if err := as.Store.Put(ctx, key, file.Reader, file.Size, file.Type); err != nil {
			log.Printf("Error uploading %s (key %s): %v", file.Name, key, err)
			return nil, errors.Wrapf(err, "failed to upload %s", file.Name)
		}

		log.Printf("Uploaded %s (%s) as %s", file.Name, humanize.IBytes(uint64(file.Size)), key)

		attachments = append(attachments, models.Attachment{
			Name: file.Name,
			URL:  as.Store.PublicURL(key),
			Size: file.Size,
			Type: file.Type,
		})
	}

	return attachments, nil
}
