package render

import (
	"regexp"
	"strconv"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// AnchorID deriva um id seguro para o DOM a partir do título e da posição
// do post. A posição garante unicidade entre títulos repetidos.
func AnchorID(title string, index int) string {
	return nonAlphanumeric.ReplaceAllString(title, "_") + "_" + strconv.Itoa(index)
}
