package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"postarchive/src/adapters/kafka/consumers"
	"postarchive/src/domain/entities"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-faker/faker/v4"
)

var postTypes = []string{"text_only", "image_file", "video_embed", "link", "audio_file"}

type generator struct {
	rng         *rand.Rand
	faker       *gofakeit.Faker
	maxComments int
	maxReplies  int
	maxDepth    int
	nextID      int
}

func newGenerator(seed int64, maxComments int, maxReplies int, maxDepth int) *generator {
	return &generator{
		rng:         rand.New(rand.NewSource(seed)),
		faker:       gofakeit.New(seed),
		maxComments: maxComments,
		maxReplies:  maxReplies,
		maxDepth:    maxDepth,
	}
}

// Archive gera count posts do criador, do mais recente para o mais antigo.
func (g *generator) Archive(creator string, count int) ([]consumers.PostMessage, error) {
	messages := make([]consumers.PostMessage, 0, count)
	published := time.Now().UTC()

	for position := 0; position < count; position++ {
		published = published.Add(-time.Duration(g.rng.Intn(72)+1) * time.Hour)

		post, err := g.post(creator, published)
		if err != nil {
			return nil, err
		}

		messages = append(messages, consumers.PostMessage{
			Creator:  creator,
			Position: position,
			Post:     post,
		})
	}

	return messages, nil
}

func (g *generator) post(creator string, published time.Time) (entities.Post, error) {
	postType := postTypes[g.rng.Intn(len(postTypes))]

	attributes := &entities.PostAttributes{
		Title:       faker.Sentence(),
		Content:     fmt.Sprintf("<p>%s</p><p>%s</p>", faker.Paragraph(), g.faker.HipsterSentence(12)),
		PublishedAt: published.Format("2006-01-02T15:04:05.000-07:00"),
		LikeCount:   g.rng.Intn(400),
		URL:         fmt.Sprintf("https://www.patreon.com/posts/%s-%d", g.faker.Word(), g.rng.Intn(90000000)+10000000),
		PostType:    postType,
	}

	switch postType {
	case "image_file":
		attributes.PostFile = &entities.PostFile{
			Name: g.faker.Word() + ".png",
			URL:  fmt.Sprintf("https://c10.patreonusercontent.com/%s/%s.png?token-time=%d", creator, faker.UUIDDigit(), published.Unix()),
		}
	case "audio_file":
		attributes.PostFile = &entities.PostFile{
			Name: g.faker.Word() + ".mp3",
			URL:  fmt.Sprintf("https://c10.patreonusercontent.com/%s/%s.mp3", creator, faker.UUIDDigit()),
		}
	case "video_embed":
		videoID := g.faker.LetterN(11)
		attributes.Embed = &entities.Embed{
			HTML:     fmt.Sprintf(`<iframe src="//www.youtube.com/embed/%s" frameborder="0" allowfullscreen></iframe>`, videoID),
			URL:      "https://www.youtube.com/watch?v=" + videoID,
			Provider: "YouTube",
			Subject:  attributes.Title,
		}
	case "link":
		attributes.Embed = &entities.Embed{
			URL:         g.faker.URL(),
			Subject:     g.faker.Sentence(5),
			Description: g.faker.Sentence(12),
		}
	}

	comments, err := g.comments(published)
	if err != nil {
		return entities.Post{}, err
	}
	attributes.CommentCount = len(comments.Data)
	for _, entity := range comments.Included {
		if entity.Type == entities.KindComment {
			attributes.CommentCount++
		}
	}

	return entities.Post{Attributes: attributes, Comments: comments}, nil
}

func (g *generator) comments(after time.Time) (*entities.CommentCollection, error) {
	collection := &entities.CommentCollection{
		Data:     make([]entities.IncludedEntity, 0),
		Included: make([]entities.IncludedEntity, 0),
	}

	// Poucos autores por post, para que se repitam entre os comentários
	authorCount := g.rng.Intn(4) + 1
	authors := make([]entities.Reference, 0, authorCount)
	for i := 0; i < authorCount; i++ {
		user, err := g.entity("user", entities.CommenterAttributes{
			FullName: g.faker.Name(),
			ImageURL: fmt.Sprintf("https://c8.patreon.com/2/200/%d", g.rng.Intn(9000000)),
		}, nil)
		if err != nil {
			return nil, err
		}
		authors = append(authors, user.Ref())
		collection.Included = append(collection.Included, user)
	}

	commentCount := g.rng.Intn(g.maxComments + 1)
	for i := 0; i < commentCount; i++ {
		top, err := g.comment(collection, authors, after, 0)
		if err != nil {
			return nil, err
		}
		collection.Data = append(collection.Data, top)
	}

	return collection, nil
}

func (g *generator) comment(
	collection *entities.CommentCollection,
	authors []entities.Reference,
	after time.Time,
	depth int,
) (entities.IncludedEntity, error) {
	created := after.Add(time.Duration(g.rng.Intn(48*60)+1) * time.Minute)
	author := authors[g.rng.Intn(len(authors))]

	replies := make([]entities.Reference, 0)
	if depth < g.maxDepth {
		replyCount := g.rng.Intn(g.maxReplies + 1)
		for i := 0; i < replyCount; i++ {
			reply, err := g.comment(collection, authors, created, depth+1)
			if err != nil {
				return entities.IncludedEntity{}, err
			}
			collection.Included = append(collection.Included, reply)
			replies = append(replies, reply.Ref())
		}
	}

	attributes := entities.CommentAttributes{
		Body:        faker.Sentence(),
		Created:     created.Format(time.RFC3339),
		IsByCreator: g.rng.Intn(10) == 0,
		IsByPatron:  g.rng.Intn(2) == 0,
		VoteSum:     g.rng.Intn(30),
		ReplyCount:  len(replies),
	}
	if g.rng.Intn(25) == 0 {
		deletedAt := created.Add(time.Hour).Format(time.RFC3339)
		attributes.DeletedAt = &deletedAt
	}

	return g.entity(entities.KindComment, attributes, &entities.Relationships{
		Commenter: &entities.ToOne{Data: &author},
		Replies:   &entities.ToMany{Data: replies},
	})
}

func (g *generator) entity(kind string, attributes any, relationships *entities.Relationships) (entities.IncludedEntity, error) {
	g.nextID++

	raw, err := json.Marshal(attributes)
	if err != nil {
		return entities.IncludedEntity{}, fmt.Errorf("failed to encode %s attributes: %w", kind, err)
	}

	entity := entities.IncludedEntity{
		Type:          kind,
		ID:            entities.EntityID(fmt.Sprintf("%d", g.nextID)),
		Attributes:    raw,
		Relationships: relationships,
	}

	if typed, ok := attributes.(entities.CommentAttributes); ok {
		entity.Comment = &typed
	}

	return entity, nil
}
