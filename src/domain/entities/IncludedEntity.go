package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	KindComment   = "comment"
	KindCommenter = "commenter"
)

// EntityID aceita tanto string quanto número no JSON exportado.
type EntityID string

func (id *EntityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = EntityID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("entity id must be a string or a number: %w", err)
	}
	*id = EntityID(n.String())
	return nil
}

// Reference é o par (kind, id) usado para apontar para uma entidade incluída.
type Reference struct {
	Type string   `json:"type"`
	ID   EntityID `json:"id"`
}

type ToOne struct {
	Data *Reference `json:"data"`
}

type ToMany struct {
	Data []Reference `json:"data"`
}

type Relationships struct {
	Commenter *ToOne  `json:"commenter,omitempty"`
	Replies   *ToMany `json:"replies,omitempty"`
}

// É o envelope polimórfico de uma entidade incluída. Os atributos ficam
// crus em Attributes e, para os tipos conhecidos, também decodificados
// na visão tipada correspondente.
type IncludedEntity struct {
	Type          string          `json:"type"`
	ID            EntityID        `json:"id"`
	Attributes    json.RawMessage `json:"attributes,omitempty"`
	Relationships *Relationships  `json:"relationships,omitempty"`

	Comment   *CommentAttributes   `json:"-"`
	Commenter *CommenterAttributes `json:"-"`
}

type CommentAttributes struct {
	Body        string  `json:"body"`
	Created     string  `json:"created"`
	IsByCreator bool    `json:"is_by_creator"`
	IsByPatron  bool    `json:"is_by_patron"`
	VoteSum     int     `json:"vote_sum"`
	DeletedAt   *string `json:"deleted_at"`
	ReplyCount  int     `json:"reply_count"`
}

type CommenterAttributes struct {
	FullName string `json:"full_name"`
	ImageURL string `json:"image_url"`
}

func (e *IncludedEntity) UnmarshalJSON(data []byte) error {
	type envelope IncludedEntity

	var raw envelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = IncludedEntity(raw)

	if !e.HasAttributes() {
		return nil
	}

	switch e.Type {
	case KindComment:
		var attrs CommentAttributes
		if err := json.Unmarshal(e.Attributes, &attrs); err != nil {
			return fmt.Errorf("invalid attributes for comment %q: %w", e.ID, err)
		}
		e.Comment = &attrs
	case KindCommenter:
		var attrs CommenterAttributes
		if err := json.Unmarshal(e.Attributes, &attrs); err != nil {
			return fmt.Errorf("invalid attributes for commenter %q: %w", e.ID, err)
		}
		e.Commenter = &attrs
	}

	return nil
}

// HasAttributes diz se a entidade veio com atributos próprios ou se é
// apenas uma referência (kind, id).
func (e IncludedEntity) HasAttributes() bool {
	trimmed := bytes.TrimSpace(e.Attributes)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// AsCommenter retorna a identidade do autor guardada na entidade. Exports
// usam kinds diferentes para o autor ("commenter", "user"), então qualquer
// entidade que não seja um comentário é lida como identidade.
func (e IncludedEntity) AsCommenter() *CommenterAttributes {
	if e.Commenter != nil {
		return e.Commenter
	}
	if e.Type == KindComment || !e.HasAttributes() {
		return nil
	}

	var attrs CommenterAttributes
	if err := json.Unmarshal(e.Attributes, &attrs); err != nil {
		return nil
	}
	return &attrs
}

func (e IncludedEntity) Ref() Reference {
	return Reference{Type: e.Type, ID: e.ID}
}
