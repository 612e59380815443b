package httpserver

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"hotel_insights/internal/domain"
)

// LoadBackground reads the overview background image and returns the CSS
// declarations that lay it, inlined as a data URI, under a dark gradient.
func LoadBackground(path string) (template.CSS, error) {
	img, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("background %s: %w", path, domain.ErrMissingFile)
	}
	if err != nil {
		return "", fmt.Errorf("read background %s: %w", path, err)
	}
	return backgroundCSS(img), nil
}

func backgroundCSS(img []byte) template.CSS {
	uri := "data:" + http.DetectContentType(img) + ";base64," + base64.StdEncoding.EncodeToString(img)
	return template.CSS(fmt.Sprintf(
		`background-image: linear-gradient(rgba(0, 0, 0, 0.4), rgba(0, 0, 0, 0.4)), url(%q); `+
			`background-size: cover; background-position: center; background-repeat: no-repeat; background-attachment: fixed;`,
		uri))
}
