package entities

// PostTypeVideoEmbed marca posts cujo embed é um player de vídeo de terceiros.
const PostTypeVideoEmbed = "video_embed"

// É a unidade publicada do arquivo. Um post não tem ID persistente:
// ele é identificado pela sua posição na sequência de entrada.
type Post struct {
	Attributes *PostAttributes    `json:"attributes"`
	Comments   *CommentCollection `json:"comments,omitempty"`
}

type PostAttributes struct {
	Title string `json:"title"`
	// Conteúdo rico, pode conter markup cru.
	Content      string    `json:"content"`
	PublishedAt  string    `json:"published_at"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	URL          string    `json:"url"`
	PostFile     *PostFile `json:"post_file,omitempty"`
	Embed        *Embed    `json:"embed,omitempty"`
	PostType     string    `json:"post_type"`
}

type PostFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Embed struct {
	HTML        string `json:"html"`
	URL         string `json:"url"`
	Provider    string `json:"provider,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description,omitempty"`
}

// CommentCollection são os comentários de um post: a lista ordenada dos
// comentários de topo e a lista achatada de entidades incluídas
// (commenters e respostas, misturados independente do tipo).
type CommentCollection struct {
	Data     []IncludedEntity `json:"data"`
	Included []IncludedEntity `json:"included"`
}
