package render

import (
	"html/template"
	"postarchive/src/domain/entities"
	"regexp"
	"strings"
)

const responsiveFrame = `<iframe class="w-full h-full" style="aspect-ratio: 16/9"`

var iframeOpen = regexp.MustCompile(`(?i)<iframe\b`)

type videoEmbedView struct {
	Index  int
	Markup template.HTML
}

// RenderEmbed renderiza um embed. Para vídeo, o markup vai inerte num
// <template> com id indexado pela posição do post, atrás de um botão; o
// shell da página é quem o ativa. Um link simples é sempre anexado quando
// o embed tem URL.
func RenderEmbed(embed entities.Embed, postType string, index int) template.HTML {
	var sb strings.Builder

	if postType == entities.PostTypeVideoEmbed {
		sb.WriteString(string(execute("video_embed", videoEmbedView{
			Index:  index,
			Markup: template.HTML(SecureVideoMarkup(embed.HTML)),
		})))
	}

	if embed.URL != "" {
		sb.WriteString(string(execute("embed_link", embed.URL)))
	}

	return template.HTML(sb.String())
}

// SecureVideoMarkup força referências protocol-relative para https e faz
// os iframes ocuparem o container em 16:9.
func SecureVideoMarkup(markup string) string {
	markup = strings.ReplaceAll(markup, `"//`, `"https://`)
	return iframeOpen.ReplaceAllLiteralString(markup, responsiveFrame)
}
