package render

import (
	"html/template"
	"postarchive/src/domain/entities"
	"strings"
)

// ContentVariant é a união discriminada dos formatos de conteúdo anexado a
// um post. Só os tipos deste pacote a implementam.
type ContentVariant interface {
	contentVariant()
}

// FileVariant é um arquivo anexado (imagem ou arquivo linkado).
type FileVariant struct {
	File entities.PostFile
}

// EmbedVariant é um embed rico. PostType decide se o markup vai para o
// gate de carregamento adiado; Index é a posição do post na página.
type EmbedVariant struct {
	Embed    entities.Embed
	PostType string
	Index    int
}

func (FileVariant) contentVariant()  {}
func (EmbedVariant) contentVariant() {}

// VariantsOf extrai as variantes de conteúdo de um post, na ordem de
// renderização: arquivo primeiro, embed depois.
func VariantsOf(attrs *entities.PostAttributes, index int) []ContentVariant {
	if attrs == nil {
		return nil
	}

	var variants []ContentVariant
	if attrs.PostFile != nil {
		variants = append(variants, FileVariant{File: *attrs.PostFile})
	}
	if attrs.Embed != nil {
		variants = append(variants, EmbedVariant{
			Embed:    *attrs.Embed,
			PostType: attrs.PostType,
			Index:    index,
		})
	}
	return variants
}

// RenderVariant produz o fragmento de uma variante. Variantes
// desconhecidas (ou nil) produzem um fragmento vazio.
func RenderVariant(variant ContentVariant) template.HTML {
	switch v := variant.(type) {
	case FileVariant:
		return RenderPostFile(v.File)
	case EmbedVariant:
		return RenderEmbed(v.Embed, v.PostType, v.Index)
	default:
		return ""
	}
}

// RenderVariants concatena os fragmentos de todas as variantes do post.
// Sem payload o resultado é vazio; o corpo do post é responsabilidade de quem chama.
func RenderVariants(attrs *entities.PostAttributes, index int) template.HTML {
	var sb strings.Builder
	for _, variant := range VariantsOf(attrs, index) {
		sb.WriteString(string(RenderVariant(variant)))
	}
	return template.HTML(sb.String())
}
