package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sync"

	"floormapper-backend/internal/models"

	"github.com/google/uuid"
)

// ShareUploader persists a finished archive somewhere reachable by link.
// Implemented by the GCS client wrapper; nil means download-only operation.
type ShareUploader interface {
	UploadArchive(ctx context.Context, name string, data []byte) (string, error)
}

// Driver orchestrates packager and site generator into one archive. At most
// one export per plan runs at a time: a second request while one is
// outstanding is rejected, not queued.
type Driver struct {
	mu       sync.Mutex
	inflight map[uuid.UUID]bool
	uploader ShareUploader
}

func NewDriver(uploader ShareUploader) *Driver {
	return &Driver{
		inflight: make(map[uuid.UUID]bool),
		uploader: uploader,
	}
}

// ExportProject produces the complete zip archive for one plan:
// <project>/index.html plus every asset entry. The export reads a snapshot
// and never mutates the store, so a failed export leaves no trace.
func (d *Driver) ExportProject(planID uuid.UUID, project models.Project) ([]byte, error) {
	if project.Name == "" {
		return nil, models.ErrMissingProjectName
	}

	if err := d.acquire(planID); err != nil {
		return nil, err
	}
	defer d.release(planID)

	assets, err := PackageAssets(project)
	if err != nil {
		return nil, err
	}

	page, err := GenerateSite(project)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrArchiveGeneration, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entry, err := zw.Create(fmt.Sprintf("%s/index.html", project.Name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrArchiveGeneration, err)
	}
	if _, err := entry.Write([]byte(page)); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrArchiveGeneration, err)
	}

	// assets are written one after another; total volume is small
	for _, asset := range assets {
		entry, err := zw.Create(asset.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrArchiveGeneration, err)
		}
		if _, err := entry.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrArchiveGeneration, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrArchiveGeneration, err)
	}
	return buf.Bytes(), nil
}

// ShareProject exports the archive and hands it to the configured uploader,
// returning a shareable link. This is the delivery path for clients that
// cannot receive a download directly.
func (d *Driver) ShareProject(ctx context.Context, planID uuid.UUID, project models.Project) (string, error) {
	if d.uploader == nil {
		return "", fmt.Errorf("share delivery is not configured")
	}

	data, err := d.ExportProject(planID, project)
	if err != nil {
		return "", err
	}

	url, err := d.uploader.UploadArchive(ctx, fmt.Sprintf("%s.zip", project.Name), data)
	if err != nil {
		return "", fmt.Errorf("failed to upload archive: %w", err)
	}
	return url, nil
}

func (d *Driver) acquire(planID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inflight[planID] {
		return models.ErrExportInProgress
	}
	d.inflight[planID] = true
	return nil
}

func (d *Driver) release(planID uuid.UUID) {
	d.mu.Lock()
	delete(d.inflight, planID)
	d.mu.Unlock()
}
