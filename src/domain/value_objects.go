package domain

import (
	"errors"
	"postarchive/src/domain/entities"
	"time"
)

var (
	ErrArchiveNotFound = errors.New("archive not found")

	ErrSnapshotNotFound = errors.New("snapshot not found")

	// Post sem o objeto `attributes`. O núcleo assume um documento
	// estruturalmente válido, então isso é fatal para quem chamou.
	ErrMalformedPost = errors.New("malformed post")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ########### PROCESSO DE RESOLUÇÃO DOS COMENTÁRIOS ##########
// ############################################################

// CommentNode é um comentário já resolvido: o commenter (se encontrado)
// e as respostas na ordem declarada.
type CommentNode struct {
	ID        entities.EntityID
	Comment   entities.CommentAttributes
	Commenter *entities.CommenterAttributes
	Replies   []*CommentNode
}

// Count retorna o número de nós da sub-árvore, incluindo a raiz.
func (n *CommentNode) Count() int {
	if n == nil {
		return 0
	}

	total := 1
	for _, reply := range n.Replies {
		total += reply.Count()
	}
	return total
}

// ############################################################
// ########### PROCESSO DE ESCRITA DO ARQUIVO #################
// ############################################################

// ArchivedPostDTO é um post do arquivo de um criador, na sua posição.
type ArchivedPostDTO struct {
	Creator  string
	Position int
	Post     entities.Post
}

// RenderSummary é o resultado de um re-render de todos os arquivos.
// Falhas de um criador não impedem os demais.
type RenderSummary struct {
	Rendered []*Snapshot
	Failed   []string
}

// Snapshot é um documento renderizado e publicado.
type Snapshot struct {
	RenderID   string    `json:"render_id"`
	Creator    string    `json:"creator"`
	PostCount  int       `json:"post_count"`
	RenderedAt time.Time `json:"rendered_at"`
	Document   string    `json:"document"`
}
