package stubs

import (
	"encoding/json"
	"postarchive/src/domain/entities"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// CommentStub monta uma entidade incluída do tipo "comment".
type CommentStub struct {
	id            entities.EntityID
	attributes    entities.CommentAttributes
	relationships *entities.Relationships
}

func NewCommentStub() CommentStub {
	created := gofakeit.DateRange(
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	).UTC()

	return CommentStub{
		id: entities.EntityID(gofakeit.UUID()),
		attributes: entities.CommentAttributes{
			Body:       gofakeit.Sentence(8),
			Created:    created.Format(time.RFC3339),
			VoteSum:    gofakeit.Number(0, 50),
			ReplyCount: 0,
		},
	}
}

func (cs CommentStub) WithID(id string) CommentStub {
	cs.id = entities.EntityID(id)
	return cs
}

func (cs CommentStub) WithBody(body string) CommentStub {
	cs.attributes.Body = body
	return cs
}

func (cs CommentStub) WithVoteSum(votes int) CommentStub {
	cs.attributes.VoteSum = votes
	return cs
}

func (cs CommentStub) WithReplyCount(count int) CommentStub {
	cs.attributes.ReplyCount = count
	return cs
}

func (cs CommentStub) WithDeletedAt(deletedAt string) CommentStub {
	cs.attributes.DeletedAt = &deletedAt
	return cs
}

func (cs CommentStub) ByCreator() CommentStub {
	cs.attributes.IsByCreator = true
	return cs
}

func (cs CommentStub) ByPatron() CommentStub {
	cs.attributes.IsByPatron = true
	return cs
}

func (cs CommentStub) WithCommenter(commenterID string) CommentStub {
	cs.relationships = cs.cloneRelationships()
	cs.relationships.Commenter = &entities.ToOne{
		Data: &entities.Reference{Type: entities.KindCommenter, ID: entities.EntityID(commenterID)},
	}
	return cs
}

// WithReplies aponta as respostas para os ids informados, todas do tipo "comment".
func (cs CommentStub) WithReplies(replyIDs ...string) CommentStub {
	refs := make([]entities.Reference, 0, len(replyIDs))
	for _, id := range replyIDs {
		refs = append(refs, entities.Reference{Type: entities.KindComment, ID: entities.EntityID(id)})
	}
	return cs.WithReplyRefs(refs...)
}

func (cs CommentStub) WithReplyRefs(refs ...entities.Reference) CommentStub {
	cs.relationships = cs.cloneRelationships()
	cs.relationships.Replies = &entities.ToMany{Data: refs}
	return cs
}

func (cs CommentStub) cloneRelationships() *entities.Relationships {
	if cs.relationships == nil {
		return &entities.Relationships{}
	}
	clone := *cs.relationships
	return &clone
}

func (cs CommentStub) Get() entities.IncludedEntity {
	attrs := cs.attributes
	attrsJSON, _ := json.Marshal(attrs)

	return entities.IncludedEntity{
		Type:          entities.KindComment,
		ID:            cs.id,
		Attributes:    attrsJSON,
		Relationships: cs.relationships,
		Comment:       &attrs,
	}
}

// CommenterStub monta uma entidade incluída do tipo "commenter".
type CommenterStub struct {
	id         entities.EntityID
	attributes entities.CommenterAttributes
}

func NewCommenterStub() CommenterStub {
	return CommenterStub{
		id: entities.EntityID(gofakeit.UUID()),
		attributes: entities.CommenterAttributes{
			FullName: gofakeit.Name(),
			ImageURL: gofakeit.URL() + "/avatar.png",
		},
	}
}

func (cs CommenterStub) WithID(id string) CommenterStub {
	cs.id = entities.EntityID(id)
	return cs
}

func (cs CommenterStub) WithFullName(name string) CommenterStub {
	cs.attributes.FullName = name
	return cs
}

func (cs CommenterStub) WithImageURL(imageURL string) CommenterStub {
	cs.attributes.ImageURL = imageURL
	return cs
}

func (cs CommenterStub) Get() entities.IncludedEntity {
	attrs := cs.attributes
	attrsJSON, _ := json.Marshal(attrs)

	return entities.IncludedEntity{
		Type:       entities.KindCommenter,
		ID:         cs.id,
		Attributes: attrsJSON,
		Commenter:  &attrs,
	}
}
