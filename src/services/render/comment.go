package render

import (
	"html/template"
	"postarchive/src/domain"
	"postarchive/src/helper/dates"
	"strings"
)

type commenterView struct {
	FullName    string
	ImageURL    string
	IsByCreator bool
	IsByPatron  bool
	Created     string
}

type commentView struct {
	Identity   template.HTML
	Body       string
	VoteSum    int
	ReplyCount int
	Deleted    bool
}

// RenderComment renderiza um comentário resolvido seguido, na ordem
// declarada, dos fragmentos de todas as suas respostas.
func RenderComment(node *domain.CommentNode) template.HTML {
	if node == nil {
		return ""
	}

	var sb strings.Builder
	writeComment(&sb, node)
	return template.HTML(sb.String())
}

func writeComment(sb *strings.Builder, node *domain.CommentNode) {
	sb.WriteString(string(renderSingleComment(node)))

	for _, reply := range node.Replies {
		writeComment(sb, reply)
	}
}

func renderSingleComment(node *domain.CommentNode) template.HTML {
	attrs := node.Comment

	view := commentView{
		Identity:   renderIdentity(node),
		Body:       attrs.Body,
		VoteSum:    attrs.VoteSum,
		ReplyCount: attrs.ReplyCount,
		Deleted:    attrs.DeletedAt != nil && *attrs.DeletedAt != "",
	}

	return execute("comment", view)
}

// renderIdentity só gera o bloco quando há commenter com nome; sem nome
// nada é exibido, nem o avatar.
func renderIdentity(node *domain.CommentNode) template.HTML {
	if node.Commenter == nil || strings.TrimSpace(node.Commenter.FullName) == "" {
		return ""
	}

	return execute("commenter", commenterView{
		FullName:    node.Commenter.FullName,
		ImageURL:    node.Commenter.ImageURL,
		IsByCreator: node.Comment.IsByCreator,
		IsByPatron:  node.Comment.IsByPatron,
		Created:     dates.Display(node.Comment.Created),
	})
}
