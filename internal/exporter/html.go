package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/jk/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/jokes-favorites-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("jokes-favorites-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the session's favorites as a standalone HTML page.
func ExportHTML(session *model.Session) string {
	var b strings.Builder

	favorites := session.Favorites()

	// Header
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<meta name=\"jk-session\" content=\"%s\">\n", html.EscapeString(session.ID()))
	b.WriteString("<title>Favorite Jokes</title>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<h1>Favorite Jokes</h1>\n")

	if len(favorites) == 0 {
		b.WriteString("<p>No jokes added to favorites yet.</p>\n")
	}

	for _, joke := range favorites {
		writeJoke(&b, joke)
	}

	// Footer
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// WriteFile writes a rendered export document to path, creating its directory.
func WriteFile(path, doc string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(doc), 0644)
}

func writeJoke(b *strings.Builder, joke model.Joke) {
	fmt.Fprintf(b, "<article data-id=\"%d\" data-type=\"%s\">\n", joke.ID, html.EscapeString(joke.Type))
	fmt.Fprintf(b, "    <p class=\"setup\">%s</p>\n", html.EscapeString(joke.Setup))
	fmt.Fprintf(b, "    <p class=\"punchline\">%s</p>\n", html.EscapeString(joke.Punchline))
	b.WriteString("</article>\n")
}
