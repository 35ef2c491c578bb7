// Package export turns a project snapshot into a self-contained static site
// packaged as a zip archive.
package export

import (
	"fmt"

	"floormapper-backend/internal/models"
)

// Asset is one archive entry: a path relative to the archive root and the
// full binary content. Attachments are small user uploads, so everything is
// held in memory and written sequentially.
type Asset struct {
	Path string
	Data []byte
}

// PackageAssets walks the project and assigns every binary an archive path:
// the main image at <project>/assets/<imageName>, each attachment at
// <project>/assets/<spaceID>-<fileName>. The space-id prefix is what keeps
// equally named attachments of different spaces apart.
func PackageAssets(project models.Project) ([]Asset, error) {
	if len(project.ImageData) == 0 || project.ImageName == "" {
		return nil, models.ErrMissingImage
	}

	assets := []Asset{{
		Path: fmt.Sprintf("%s/assets/%s", project.Name, project.ImageName),
		Data: project.ImageData,
	}}

	for _, space := range project.FloorSpaces {
		names := space.AssetFileNames()
		for i, att := range space.Attachments {
			assets = append(assets, Asset{
				Path: fmt.Sprintf("%s/assets/%s-%s", project.Name, space.ID, names[i]),
				Data: att.Data,
			})
		}
	}
	return assets, nil
}
