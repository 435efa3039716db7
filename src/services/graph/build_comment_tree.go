package graph

import (
	"postarchive/src/domain"
	"postarchive/src/domain/entities"
)

// BuildCommentTree resolve a sub-árvore de um comentário contra o índice.
// Retorna nil se a entidade não for um comentário com atributos.
func (gs *GraphService) BuildCommentTree(comment entities.IncludedEntity, index *EntityIndex) *domain.CommentNode {
	if comment.Comment == nil {
		return nil
	}

	return gs.buildNode(comment, index, make(map[entities.EntityID]bool), 0)
}

func (gs *GraphService) buildNode(
	comment entities.IncludedEntity,
	index *EntityIndex,
	ancestors map[entities.EntityID]bool,
	depth int,
) *domain.CommentNode {
	node := &domain.CommentNode{
		ID:      comment.ID,
		Comment: *comment.Comment,
	}

	relationships := comment.Relationships
	if relationships == nil {
		return node
	}

	if relationships.Commenter != nil && relationships.Commenter.Data != nil && relationships.Commenter.Data.ID != "" {
		if entity, ok := index.Resolve(*relationships.Commenter.Data); ok {
			node.Commenter = entity.AsCommenter()
		}
		if node.Commenter == nil {
			gs.logger.Debug("Commenter reference not resolved",
				"comment_id", comment.ID,
				"commenter_id", relationships.Commenter.Data.ID)
		}
	}

	if relationships.Replies == nil || len(relationships.Replies.Data) == 0 {
		return node
	}

	if gs.depthLimit > 0 && depth >= gs.depthLimit {
		gs.logger.Debug("Depth limit reached, replies truncated",
			"comment_id", comment.ID,
			"depth", depth,
			"replies", len(relationships.Replies.Data))
		return node
	}

	ancestors[comment.ID] = true
	defer delete(ancestors, comment.ID)

	node.Replies = make([]*domain.CommentNode, 0, len(relationships.Replies.Data))
	for _, ref := range relationships.Replies.Data {
		if ref.Type != entities.KindComment {
			continue
		}

		reply, ok := index.Resolve(ref)
		if !ok || reply.Comment == nil {
			gs.logger.Debug("Reply reference not resolved",
				"comment_id", comment.ID,
				"reply_id", ref.ID)
			continue
		}

		if ancestors[reply.ID] {
			gs.logger.Warn("Cyclic reply reference skipped",
				"comment_id", comment.ID,
				"reply_id", reply.ID)
			continue
		}

		node.Replies = append(node.Replies, gs.buildNode(*reply, index, ancestors, depth+1))
	}

	return node
}
