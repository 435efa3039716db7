package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"postarchive/src/domain"
	"postarchive/src/domain/entities"
	"postarchive/src/services/archive"
	"time"

	"github.com/google/uuid"
)

type PostSource interface {
	LoadPosts(ctx context.Context, creator string) ([]entities.Post, error)
	ListCreators(ctx context.Context) ([]string, error)
}

type SnapshotStore interface {
	Publish(ctx context.Context, snapshot domain.Snapshot) error
	Latest(ctx context.Context, creator string) (*domain.Snapshot, error)
	ListCreators(ctx context.Context) ([]string, error)
}

// SnapshotService renderiza o arquivo de um criador a partir do store e
// publica o documento resultante.
type SnapshotService struct {
	logger         *slog.Logger
	postSource     PostSource
	snapshotStore  SnapshotStore
	archiveService *archive.ArchiveService
	now            func() time.Time
}

func NewSnapshotService(
	logger *slog.Logger,
	postSource PostSource,
	snapshotStore SnapshotStore,
	archiveService *archive.ArchiveService,
) *SnapshotService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &SnapshotService{
		logger:         logger,
		postSource:     postSource,
		snapshotStore:  snapshotStore,
		archiveService: archiveService,
		now:            time.Now,
	}
}

func (s *SnapshotService) RenderAndPublish(ctx context.Context, creator string) (*domain.Snapshot, error) {
	posts, err := s.postSource.LoadPosts(ctx, creator)
	if err != nil {
		return nil, fmt.Errorf("SnapshotService.RenderAndPublish - failed to load posts: %w", err)
	}

	renderedAt := s.now().UTC()
	document, err := s.archiveService.RenderDocument(posts, archive.Options{
		CreatorURL: creator,
		Now:        renderedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("SnapshotService.RenderAndPublish - failed to render archive: %w", err)
	}

	snapshot := domain.Snapshot{
		RenderID:   uuid.NewString(),
		Creator:    creator,
		PostCount:  len(posts),
		RenderedAt: renderedAt,
		Document:   document,
	}

	if err := s.snapshotStore.Publish(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("SnapshotService.RenderAndPublish - failed to publish snapshot: %w", err)
	}

	s.logger.Info("Archive rendered from store",
		"creator", creator,
		"render_id", snapshot.RenderID,
		"posts", snapshot.PostCount)

	return &snapshot, nil
}

// RenderAll renderiza e publica o arquivo de todo criador com posts no store.
func (s *SnapshotService) RenderAll(ctx context.Context) (*domain.RenderSummary, error) {
	creators, err := s.postSource.ListCreators(ctx)
	if err != nil {
		return nil, fmt.Errorf("SnapshotService.RenderAll - failed to list archived creators: %w", err)
	}

	result := &domain.RenderSummary{
		Rendered: make([]*domain.Snapshot, 0, len(creators)),
		Failed:   make([]string, 0),
	}

	for _, creator := range creators {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("SnapshotService.RenderAll - interrupted: %w", err)
		}

		snapshot, err := s.RenderAndPublish(ctx, creator)
		if err != nil {
			s.logger.Error("Failed to render archive", "creator", creator, "error", err)
			result.Failed = append(result.Failed, creator)
			continue
		}
		result.Rendered = append(result.Rendered, snapshot)
	}

	s.logger.Info("Archives re-rendered",
		"creators", len(creators),
		"rendered", len(result.Rendered),
		"failed", len(result.Failed))

	return result, nil
}

// Publish publica um documento já renderizado (ex: pela CLI).
func (s *SnapshotService) Publish(ctx context.Context, creator string, postCount int, document string) (*domain.Snapshot, error) {
	snapshot := domain.Snapshot{
		RenderID:   uuid.NewString(),
		Creator:    creator,
		PostCount:  postCount,
		RenderedAt: s.now().UTC(),
		Document:   document,
	}

	if err := s.snapshotStore.Publish(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("SnapshotService.Publish - failed to publish snapshot: %w", err)
	}

	return &snapshot, nil
}

func (s *SnapshotService) Latest(ctx context.Context, creator string) (*domain.Snapshot, error) {
	return s.snapshotStore.Latest(ctx, creator)
}

func (s *SnapshotService) ListCreators(ctx context.Context) ([]string, error) {
	return s.snapshotStore.ListCreators(ctx)
}
