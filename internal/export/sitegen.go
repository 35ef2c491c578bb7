package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"floormapper-backend/internal/models"
)

// pageRecord is the plain-data form of a floor space embedded in the
// generated page. Binary content never travels here, only file names that
// resolve against the sibling assets/ folder.
type pageRecord struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Desc        string             `json:"desc"`
	Coordinates models.Coordinates `json:"coordinates"`
	Color       string             `json:"color"`
	FileNames   []string           `json:"fileNames"`
}

type pageData struct {
	Title     string
	ImageName string
	Records   template.JS
}

var siteTemplate = template.Must(template.New("site").Parse(siteHTML))

// GenerateSite renders the standalone viewer page. The page carries the
// floor-space list inline, scales stored pixel coordinates to the rendered
// image size on load and on resize, and reveals a draggable detail panel per
// region, so the export works from plain file hosting with no server.
func GenerateSite(project models.Project) (string, error) {
	records := make([]pageRecord, 0, len(project.FloorSpaces))
	for _, space := range project.FloorSpaces {
		records = append(records, pageRecord{
			ID:          space.ID,
			Name:        space.Name,
			Desc:        space.Description,
			Coordinates: space.Coordinates,
			Color:       space.Color,
			FileNames:   space.AssetFileNames(),
		})
	}

	encoded, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to serialize floor spaces: %w", err)
	}

	var out strings.Builder
	err = siteTemplate.Execute(&out, pageData{
		Title:     project.Name,
		ImageName: project.ImageName,
		Records:   template.JS(encoded),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render site: %w", err)
	}
	return out.String(), nil
}

const siteHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    * {
      margin: 0;
      padding: 0;
      box-sizing: border-box;
    }

    body {
      font-family: 'Arial', sans-serif;
      line-height: 1.6;
      background-color: #f4f4f9;
      color: #333;
      padding: 20px;
    }

    .image-container {
      position: relative;
      width: 80%;
      max-width: 1200px;
      margin: 0 auto 20px auto;
    }

    #floor-plan {
      width: 100%;
      height: auto;
      border-radius: 8px;
      box-shadow: 0 4px 8px rgba(0, 0, 0, 0.1);
      display: block;
    }

    .space-overlay {
      position: absolute;
      border: 2px solid rgba(0, 123, 255, 0.8);
      background-color: rgba(0, 123, 255, 0.15);
      cursor: pointer;
    }

    .space-overlay:hover {
      background-color: rgba(0, 123, 255, 0.3);
    }

    #detail-panel {
      position: fixed;
      top: 80px;
      left: 40px;
      background-color: #fff;
      padding: 20px;
      border-radius: 8px;
      box-shadow: 0 4px 10px rgba(0, 0, 0, 0.1);
      max-width: 400px;
      cursor: grab;
    }

    #detail-panel[hidden] {
      display: none;
    }

    #detail-panel h2 {
      font-size: 20px;
      margin-bottom: 10px;
      margin-right: 30px;
    }

    #close-panel {
      background-color: #ff4d4f;
      color: white;
      border: none;
      padding: 8px 12px;
      border-radius: 4px;
      cursor: pointer;
      font-size: 16px;
      position: absolute;
      top: 10px;
      right: 10px;
    }

    #close-panel:hover {
      background-color: #d93638;
    }

    #space-files {
      margin-top: 10px;
      list-style: none;
    }

    #space-files a {
      color: #007bff;
    }

    @media (max-width: 768px) {
      .image-container {
        width: 100%;
      }

      #detail-panel {
        width: 90%;
        left: 5%;
      }
    }
  </style>
</head>
<body>
  <div class="image-container">
    <img id="floor-plan" src="./assets/{{.ImageName}}" alt="Floor Plan">
  </div>

  <div id="detail-panel" hidden>
    <button type="button" id="close-panel">X</button>
    <h2 id="space-name"></h2>
    <p id="space-desc"></p>
    <ul id="space-files"></ul>
  </div>

  <script>
    const floorSpaces = {{.Records}};

    const img = document.getElementById('floor-plan');
    const container = document.querySelector('.image-container');
    const panel = document.getElementById('detail-panel');
    const nameField = document.getElementById('space-name');
    const descField = document.getElementById('space-desc');
    const fileList = document.getElementById('space-files');

    const overlays = floorSpaces.map(fs => {
      const el = document.createElement('div');
      el.className = 'space-overlay';
      el.title = fs.name;
      if (fs.color) {
        el.style.borderColor = fs.color;
        el.style.backgroundColor = fs.color + '33';
      }
      el.addEventListener('click', () => showDetails(fs));
      container.appendChild(el);
      return el;
    });

    // Coordinates are stored in the source image's pixel space; the rendered
    // image is fluid-scaled, so every overlay is repositioned from the current
    // ratio between rendered and natural size.
    function layoutOverlays() {
      if (!img.naturalWidth || !img.naturalHeight) return;
      const scaleX = img.clientWidth / img.naturalWidth;
      const scaleY = img.clientHeight / img.naturalHeight;

      floorSpaces.forEach((fs, i) => {
        const c = fs.coordinates;
        const el = overlays[i];
        el.style.left = (c.minX * scaleX) + 'px';
        el.style.top = (c.minY * scaleY) + 'px';
        el.style.width = ((c.maxX - c.minX) * scaleX) + 'px';
        el.style.height = ((c.maxY - c.minY) * scaleY) + 'px';
      });
    }

    function showDetails(fs) {
      nameField.textContent = fs.name;
      descField.textContent = fs.desc;
      fileList.innerHTML = '';

      if (!fs.fileNames || fs.fileNames.length === 0) {
        const li = document.createElement('li');
        li.textContent = 'No files attached';
        fileList.appendChild(li);
      } else {
        fs.fileNames.forEach(name => {
          const li = document.createElement('li');
          const link = document.createElement('a');
          link.href = './assets/' + fs.id + '-' + name;
          link.textContent = name;
          link.target = '_blank';
          li.appendChild(link);
          fileList.appendChild(li);
        });
      }
      panel.hidden = false;
    }

    document.getElementById('close-panel').addEventListener('click', () => {
      panel.hidden = true;
    });

    let offsetX, offsetY, isDragging = false;

    panel.addEventListener('mousedown', event => {
      isDragging = true;
      offsetX = event.clientX - panel.getBoundingClientRect().left;
      offsetY = event.clientY - panel.getBoundingClientRect().top;
      panel.style.cursor = 'grabbing';
    });

    document.addEventListener('mousemove', event => {
      if (isDragging) {
        panel.style.left = event.clientX - offsetX + 'px';
        panel.style.top = event.clientY - offsetY + 'px';
      }
    });

    document.addEventListener('mouseup', () => {
      isDragging = false;
      panel.style.cursor = 'grab';
    });

    if (img.complete) {
      layoutOverlays();
    }
    img.addEventListener('load', layoutOverlays);
    window.addEventListener('resize', layoutOverlays);
  </script>
</body>
</html>
`
