package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	qport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/queue/port"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/usecase"
)

// RefreshSummaryTaskType is the queue task name for re-warming a room's
// cached chat summary after new messages land.
const RefreshSummaryTaskType = "chat:refresh_summary"

// RefreshSummaryPayload is the JSON payload transported via the queue.
type RefreshSummaryPayload struct {
	PostID string `json:"postId"`
}

// RegisterRefreshSummaryTask binds the task handler to the worker server.
func RegisterRefreshSummaryTask(srv qport.Server, uc *usecase.SummarizeChatUseCase) {
	srv.Register(RefreshSummaryTaskType, func(ctx context.Context, t qport.Task) error {
		var p RefreshSummaryPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying cannot help
			return err
		}
		roomID, err := uuid.Parse(p.PostID)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return uc.Refresh(ctx, roomID)
	})
}

// EnqueueRefreshSummary schedules a refresh, collapsed to at most one pending
// task per room within the uniqueness window. Failures are the caller's to
// ignore; the summary is best-effort.
func EnqueueRefreshSummary(ctx context.Context, client qport.Client, roomID uuid.UUID) error {
	payload, err := json.Marshal(RefreshSummaryPayload{PostID: roomID.String()})
	if err != nil {
		return err
	}
	_, err = client.Enqueue(ctx, qport.Task{Type: RefreshSummaryTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "chat", MaxRetry: 3, UniqueTTL: time.Minute})
	return err
}
