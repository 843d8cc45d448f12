package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// PageData is everything the dashboard page shows for one year.
type PageData struct {
	PageTitle   string
	Years       []int
	Selected    int
	Figure      Figure
	Regions     int
	Matched     int
	GeneratedAt time.Time
}

// Page writes the dashboard HTML with the figure inlined.
func Page(w io.Writer, data PageData) error {
	// json.Marshal escapes <, > and & so the figure cannot close the script tag.
	fig, err := json.Marshal(data.Figure)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}

	return pageTemplate.Execute(w, struct {
		PageTitle   string
		Years       []int
		Selected    int
		Figure      template.JS
		Regions     int
		Matched     int
		GeneratedAt string
	}{
		PageTitle:   data.PageTitle,
		Years:       data.Years,
		Selected:    data.Selected,
		Figure:      template.JS(fig), //nolint:gosec // JSON produced by encoding/json
		Regions:     data.Regions,
		Matched:     data.Matched,
		GeneratedAt: data.GeneratedAt.UTC().Format(time.RFC3339),
	})
}
