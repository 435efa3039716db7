package graph

import (
	"log/slog"
	"postarchive/src/domain/entities"
)

type GraphService struct {
	logger     *slog.Logger
	depthLimit int
}

// NewGraphService cria o resolvedor. depthLimit <= 0 significa sem limite
// de profundidade para as respostas.
func NewGraphService(logger *slog.Logger, depthLimit int) *GraphService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &GraphService{
		logger:     logger,
		depthLimit: depthLimit,
	}
}

// EntityIndex é o mapeamento explícito id -> entidade de uma lista de
// entidades incluídas. É somente leitura depois de construído.
type EntityIndex struct {
	byID map[entities.EntityID]*entities.IncludedEntity
}

// NewEntityIndex indexa as entidades pelo id. Se dois itens compartilham
// o mesmo id, o primeiro na ordem da lista vence.
func NewEntityIndex(included []entities.IncludedEntity) *EntityIndex {
	index := &EntityIndex{
		byID: make(map[entities.EntityID]*entities.IncludedEntity, len(included)),
	}

	for i := range included {
		if _, exists := index.byID[included[i].ID]; exists {
			continue
		}
		index.byID[included[i].ID] = &included[i]
	}

	return index
}

// Resolve busca a entidade apontada pela referência. O match é feito
// apenas pelo id; o kind serve só para quem chama.
func (ix *EntityIndex) Resolve(ref entities.Reference) (*entities.IncludedEntity, bool) {
	if ix == nil {
		return nil, false
	}

	entity, ok := ix.byID[ref.ID]
	return entity, ok
}

func (ix *EntityIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.byID)
}
