package http

import (
	"postarchive/src/domain"
	"time"
)

type RenderResponse struct {
	RenderID   string    `json:"render_id"`
	Creator    string    `json:"creator"`
	Posts      int       `json:"posts"`
	RenderedAt time.Time `json:"rendered_at"`
}

type ArchiveListResponse struct {
	Creators []string `json:"creators"`
}

type RenderAllResponse struct {
	Rendered []*RenderResponse `json:"rendered"`
	Failed   []string          `json:"failed"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func MapSnapshotToRenderResponse(snapshot *domain.Snapshot) *RenderResponse {
	if snapshot == nil {
		return nil
	}

	return &RenderResponse{
		RenderID:   snapshot.RenderID,
		Creator:    snapshot.Creator,
		Posts:      snapshot.PostCount,
		RenderedAt: snapshot.RenderedAt,
	}
}

func MapSummaryToRenderAllResponse(summary *domain.RenderSummary) *RenderAllResponse {
	response := &RenderAllResponse{
		Rendered: make([]*RenderResponse, 0),
		Failed:   make([]string, 0),
	}
	if summary == nil {
		return response
	}

	for _, snapshot := range summary.Rendered {
		response.Rendered = append(response.Rendered, MapSnapshotToRenderResponse(snapshot))
	}
	response.Failed = append(response.Failed, summary.Failed...)

	return response
}
