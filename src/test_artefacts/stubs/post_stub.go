package stubs

import (
	"postarchive/src/domain/entities"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// PostStub monta um post exportado.
type PostStub struct {
	post entities.Post
}

func NewPostStub() PostStub {
	published := gofakeit.DateRange(
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	).UTC()

	return PostStub{post: entities.Post{
		Attributes: &entities.PostAttributes{
			Title:        gofakeit.Sentence(4),
			Content:      "<p>" + gofakeit.Paragraph(1, 3, 12, " ") + "</p>",
			PublishedAt:  published.Format(time.RFC3339),
			LikeCount:    gofakeit.Number(0, 500),
			CommentCount: 0,
			URL:          gofakeit.URL(),
			PostType:     "text_only",
		},
	}}
}

func (ps PostStub) WithTitle(title string) PostStub {
	ps.post.Attributes = ps.cloneAttributes()
	ps.post.Attributes.Title = title
	return ps
}

func (ps PostStub) WithContent(content string) PostStub {
	ps.post.Attributes = ps.cloneAttributes()
	ps.post.Attributes.Content = content
	return ps
}

func (ps PostStub) WithPublishedAt(publishedAt string) PostStub {
	ps.post.Attributes = ps.cloneAttributes()
	ps.post.Attributes.PublishedAt = publishedAt
	return ps
}

func (ps PostStub) WithPostFile(name string, url string) PostStub {
	ps.post.Attributes = ps.cloneAttributes()
	ps.post.Attributes.PostFile = &entities.PostFile{Name: name, URL: url}
	return ps
}

func (ps PostStub) WithEmbed(postType string, html string, url string) PostStub {
	ps.post.Attributes = ps.cloneAttributes()
	ps.post.Attributes.PostType = postType
	ps.post.Attributes.Embed = &entities.Embed{HTML: html, URL: url}
	return ps
}

func (ps PostStub) WithComments(data []entities.IncludedEntity, included []entities.IncludedEntity) PostStub {
	ps.post.Comments = &entities.CommentCollection{Data: data, Included: included}
	ps.post.Attributes = ps.cloneAttributes()
	ps.post.Attributes.CommentCount = len(data) + len(included)
	return ps
}

func (ps PostStub) WithoutAttributes() PostStub {
	ps.post.Attributes = nil
	return ps
}

func (ps PostStub) cloneAttributes() *entities.PostAttributes {
	if ps.post.Attributes == nil {
		return &entities.PostAttributes{}
	}
	clone := *ps.post.Attributes
	return &clone
}

func (ps PostStub) Get() entities.Post {
	return ps.post
}
