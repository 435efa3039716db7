package graph

import (
	"postarchive/src/domain"
	"postarchive/src/domain/entities"
)

// BuildCommentTrees resolve os comentários de topo de um post, na ordem
// declarada. Entradas que trazem atributos próprios são usadas como estão;
// referências puras são resolvidas contra `included` e puladas se não existirem.
func (gs *GraphService) BuildCommentTrees(collection *entities.CommentCollection) []*domain.CommentNode {
	if collection == nil || len(collection.Data) == 0 {
		return []*domain.CommentNode{}
	}

	index := NewEntityIndex(collection.Included)
	trees := make([]*domain.CommentNode, 0, len(collection.Data))

	for _, entry := range collection.Data {
		comment := entry
		if !entry.HasAttributes() {
			resolved, ok := index.Resolve(entry.Ref())
			if !ok {
				gs.logger.Debug("Top-level comment reference not resolved", "comment_id", entry.ID)
				continue
			}
			comment = *resolved
		}

		if tree := gs.BuildCommentTree(comment, index); tree != nil {
			trees = append(trees, tree)
		}
	}

	return trees
}
