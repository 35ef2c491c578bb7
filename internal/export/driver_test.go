package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"floormapper-backend/internal/models"

	"github.com/google/uuid"
)

func readEntry(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open %s: %v", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read %s: %v", name, err)
			}
			return data
		}
	}
	t.Fatalf("archive has no entry %s", name)
	return nil
}

func TestExportProjectEndToEnd(t *testing.T) {
	project := testProject(models.FloorSpace{
		ID:          "k1",
		Name:        "Kitchen",
		Coordinates: models.Coordinates{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50},
	})

	driver := NewDriver(nil)
	data, err := driver.ExportProject(uuid.New(), project)
	if err != nil {
		t.Fatalf("ExportProject: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}

	if len(zr.File) != 2 {
		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		t.Fatalf("archive entries = %v, want index.html + image only", names)
	}

	page := string(readEntry(t, zr, "office/index.html"))
	for _, fragment := range []string{`"name":"Kitchen"`, `"minX":0`, `"maxX":100`, `"maxY":50`} {
		if !strings.Contains(page, fragment) {
			t.Errorf("index.html missing %q", fragment)
		}
	}

	image := readEntry(t, zr, "office/assets/floor1.png")
	if !bytes.Equal(image, []byte("png-bytes")) {
		t.Error("image bytes do not round-trip")
	}
}

func TestExportProjectAttachmentEntries(t *testing.T) {
	project := testProject(models.FloorSpace{
		ID:          "s1",
		Name:        "Storage",
		Attachments: []models.Attachment{{Name: "inventory.csv", Data: []byte("a,b")}},
	})

	driver := NewDriver(nil)
	data, err := driver.ExportProject(uuid.New(), project)
	if err != nil {
		t.Fatalf("ExportProject: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	got := readEntry(t, zr, "office/assets/s1-inventory.csv")
	if !bytes.Equal(got, []byte("a,b")) {
		t.Error("attachment bytes do not round-trip")
	}
}

func TestExportProjectMissingName(t *testing.T) {
	project := testProject()
	project.Name = ""

	_, err := NewDriver(nil).ExportProject(uuid.New(), project)
	if !errors.Is(err, models.ErrMissingProjectName) {
		t.Errorf("err = %v, want ErrMissingProjectName", err)
	}
}

func TestExportProjectMissingImage(t *testing.T) {
	_, err := NewDriver(nil).ExportProject(uuid.New(), models.Project{Name: "office"})
	if !errors.Is(err, models.ErrMissingImage) {
		t.Errorf("err = %v, want ErrMissingImage", err)
	}
}

func TestConcurrentExportRejected(t *testing.T) {
	driver := NewDriver(nil)
	planID := uuid.New()

	if err := driver.acquire(planID); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	_, err := driver.ExportProject(planID, testProject())
	if !errors.Is(err, models.ErrExportInProgress) {
		t.Errorf("err = %v, want ErrExportInProgress", err)
	}
	driver.release(planID)

	// a different plan is unaffected, and the slot frees up afterwards
	if _, err := driver.ExportProject(uuid.New(), testProject()); err != nil {
		t.Errorf("other plan blocked: %v", err)
	}
	if _, err := driver.ExportProject(planID, testProject()); err != nil {
		t.Errorf("export after release: %v", err)
	}
}

type fakeUploader struct {
	name string
	size int
	err  error
}

func (f *fakeUploader) UploadArchive(ctx context.Context, name string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.name = name
	f.size = len(data)
	return "https://example.com/" + name, nil
}

func TestShareProject(t *testing.T) {
	uploader := &fakeUploader{}
	driver := NewDriver(uploader)

	url, err := driver.ShareProject(context.Background(), uuid.New(), testProject())
	if err != nil {
		t.Fatalf("ShareProject: %v", err)
	}
	if url != "https://example.com/office.zip" {
		t.Errorf("url = %q", url)
	}
	if uploader.name != "office.zip" || uploader.size == 0 {
		t.Errorf("uploaded %q (%d bytes)", uploader.name, uploader.size)
	}
}

func TestShareProjectNotConfigured(t *testing.T) {
	if _, err := NewDriver(nil).ShareProject(context.Background(), uuid.New(), testProject()); err == nil {
		t.Error("share without uploader should fail")
	}
}
