package archive

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"postarchive/src/domain"
	"postarchive/src/domain/entities"
	"postarchive/src/helper/dates"
	"postarchive/src/services/graph"
	"postarchive/src/services/render"
	"strings"
	"time"
)

// ArchiveService monta o documento final. Não resolve nem despacha nada:
// delega a resolução dos comentários ao GraphService e os fragmentos ao
// pacote render, e só concatena.
type ArchiveService struct {
	logger       *slog.Logger
	graphService *graph.GraphService
}

type Options struct {
	// URL da página do criador; o último segmento vira o nome exibido.
	CreatorURL string
	Now        time.Time
}

func NewArchiveService(logger *slog.Logger, graphService *graph.GraphService) *ArchiveService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &ArchiveService{
		logger:       logger,
		graphService: graphService,
	}
}

// Render escreve o documento HTML completo dos posts, na ordem de entrada.
func (as *ArchiveService) Render(w io.Writer, posts []entities.Post, opts Options) error {
	if err := Validate(posts); err != nil {
		return fmt.Errorf("ArchiveService.Render - invalid archive: %w", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	view := pageView{
		Name:  CreatorName(opts.CreatorURL),
		Year:  now.Year(),
		TOC:   make([]tocEntry, 0, len(posts)),
		Posts: make([]template.HTML, 0, len(posts)),
	}

	for i, post := range posts {
		view.TOC = append(view.TOC, tocEntry{
			Anchor: render.AnchorID(post.Attributes.Title, i),
			Title:  post.Attributes.Title,
			Day:    dates.Day(post.Attributes.PublishedAt),
		})

		fragment, err := as.RenderPost(post, i)
		if err != nil {
			return fmt.Errorf("ArchiveService.Render - failed to render post %d: %w", i, err)
		}
		view.Posts = append(view.Posts, fragment)
	}

	if err := page.ExecuteTemplate(w, "page", view); err != nil {
		return fmt.Errorf("ArchiveService.Render - failed to write document: %w", err)
	}

	as.logger.Info("Archive rendered", "creator", view.Name, "posts", len(posts))
	return nil
}

// RenderDocument é o Render para uma string.
func (as *ArchiveService) RenderDocument(posts []entities.Post, opts Options) (string, error) {
	var sb strings.Builder
	if err := as.Render(&sb, posts, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderPost produz o fragmento de um post na posição index.
func (as *ArchiveService) RenderPost(post entities.Post, index int) (template.HTML, error) {
	if post.Attributes == nil {
		return "", fmt.Errorf("post %d has no attributes: %w", index, domain.ErrMalformedPost)
	}

	attrs := post.Attributes
	view := postView{
		Anchor:       render.AnchorID(attrs.Title, index),
		Title:        attrs.Title,
		URL:          attrs.URL,
		Published:    dates.Display(attrs.PublishedAt),
		Variants:     render.RenderVariants(attrs, index),
		Content:      template.HTML(attrs.Content),
		LikeCount:    attrs.LikeCount,
		CommentCount: attrs.CommentCount,
		Comments:     as.renderComments(post.Comments),
	}

	var sb strings.Builder
	if err := page.ExecuteTemplate(&sb, "post", view); err != nil {
		return "", fmt.Errorf("failed to execute post template: %w", err)
	}
	return template.HTML(sb.String()), nil
}

func (as *ArchiveService) renderComments(collection *entities.CommentCollection) template.HTML {
	if collection == nil || len(collection.Data) == 0 {
		return ""
	}

	trees := as.graphService.BuildCommentTrees(collection)
	fragments := make([]string, 0, len(trees))
	for _, tree := range trees {
		fragments = append(fragments, string(render.RenderComment(tree)))
	}

	return template.HTML(strings.Join(fragments, commentSeparator))
}

// Validate garante que todo post tem `attributes`.
func Validate(posts []entities.Post) error {
	for i, post := range posts {
		if post.Attributes == nil {
			return fmt.Errorf("post %d has no attributes: %w", i, domain.ErrMalformedPost)
		}
	}
	return nil
}

// CreatorName extrai o nome do criador da URL da página,
// ex: https://www.patreon.com/creator_name/ -> creator_name.
func CreatorName(creatorURL string) string {
	segments := strings.FieldsFunc(creatorURL, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// OutputFileName é o nome do documento gerado: YYYY-MM-DD_index.html.
func OutputFileName(now time.Time) string {
	return dates.FileStamp(now) + "_index.html"
}
