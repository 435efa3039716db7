package render

import (
	"html/template"
	"net/url"
	"path"
	"postarchive/src/domain/entities"
	"regexp"
)

var imageExtension = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|bmp)(?:[?#]|$)`)

// IsImageURL diz se a URL aponta para um arquivo de imagem, com ou sem query.
func IsImageURL(rawURL string) bool {
	return imageExtension.MatchString(rawURL)
}

type postFileView struct {
	Name string
	URL  string
}

func RenderPostFile(file entities.PostFile) template.HTML {
	view := postFileView{Name: file.Name, URL: file.URL}

	if IsImageURL(file.URL) {
		return execute("image_file", view)
	}

	if view.Name == "" {
		view.Name = fileNameFromURL(file.URL)
	}
	return execute("linked_file", view)
}

// fileNameFromURL usa o último segmento do caminho como nome visível.
func fileNameFromURL(rawURL string) string {
	p := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Path != "" {
		p = parsed.Path
	}

	name := path.Base(p)
	if name == "." || name == "/" {
		return rawURL
	}
	return name
}
