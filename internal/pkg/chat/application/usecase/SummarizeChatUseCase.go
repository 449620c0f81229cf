package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cacheport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/cache/port"
	sumport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/summarizer/port"
	chat "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/domain"
	repository "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/port"
)

// Placeholder copy returned instead of errors: summarizer failures must
// degrade, never propagate.
const (
	SummaryPending     = "The chat summary is being prepared."
	SummaryUnavailable = "Could not load the summary. Please try again later."
)

const summaryWindow = 80

// SummarizeChatUseCase produces a short digest of the latest room messages
// through the summarizer collaborator, cached per room.
type SummarizeChatUseCase struct {
	Repo       repository.ChatRepository
	Summarizer sumport.Summarizer
	Cache      cacheport.Cache // optional
	CacheTTL   time.Duration
}

func NewSummarizeChatUseCase(repo repository.ChatRepository, s sumport.Summarizer, cache cacheport.Cache) *SummarizeChatUseCase {
	return &SummarizeChatUseCase{Repo: repo, Summarizer: s, Cache: cache, CacheTTL: time.Minute}
}

// Execute returns the summary and the total message count. Question-bearing
// requests bypass the cache; failures come back as placeholder copy.
func (uc *SummarizeChatUseCase) Execute(ctx context.Context, roomID uuid.UUID, question string) (string, int, error) {
	msgs, err := uc.Repo.ListMessages(ctx, roomID)
	if err != nil {
		return "", 0, persistenceErr(err)
	}
	count := len(msgs)

	if question == "" && uc.Cache != nil {
		if cached, err := uc.Cache.Get(ctx, uc.cacheKey(roomID)); err == nil && cached != "" {
			return cached, count, nil
		}
	}

	summary := uc.summarize(ctx, msgs, question)
	if question == "" && uc.Cache != nil && summary != SummaryPending && summary != SummaryUnavailable {
		_ = uc.Cache.Set(ctx, uc.cacheKey(roomID), summary, uc.CacheTTL)
	}
	return summary, count, nil
}

// Refresh recomputes and re-caches the room digest, ignoring the cached
// value. Used by the background refresh task after new messages land. When
// the recompute degrades to placeholder copy, the stale cached digest is
// dropped instead so it cannot outlive the messages it was built from.
func (uc *SummarizeChatUseCase) Refresh(ctx context.Context, roomID uuid.UUID) error {
	msgs, err := uc.Repo.ListMessages(ctx, roomID)
	if err != nil {
		return persistenceErr(err)
	}
	summary := uc.summarize(ctx, msgs, "")
	if uc.Cache == nil {
		return nil
	}
	if summary == SummaryPending || summary == SummaryUnavailable {
		_, err := uc.Cache.Del(ctx, uc.cacheKey(roomID))
		return err
	}
	return uc.Cache.Set(ctx, uc.cacheKey(roomID), summary, uc.CacheTTL)
}

func (uc *SummarizeChatUseCase) summarize(ctx context.Context, msgs []chat.ChatMessage, question string) string {
	if len(msgs) == 0 || uc.Summarizer == nil {
		return SummaryPending
	}
	if len(msgs) > summaryWindow {
		msgs = msgs[len(msgs)-summaryWindow:]
	}
	contents := make([]string, 0, len(msgs))
	for _, m := range msgs {
		contents = append(contents, m.Body)
	}
	summary, err := uc.Summarizer.Summarize(ctx, contents, question)
	if err != nil {
		return SummaryUnavailable
	}
	return summary
}

func (uc *SummarizeChatUseCase) cacheKey(roomID uuid.UUID) string {
	return "chat:summary:" + roomID.String()
}
