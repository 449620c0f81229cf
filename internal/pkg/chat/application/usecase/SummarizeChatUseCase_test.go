package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/cache/port"
)

type fakeSummarizer struct {
	result string
	err    error
	calls  int
	lastQ  string
}

func (f *fakeSummarizer) Summarize(_ context.Context, messages []string, question string) (string, error) {
	f.calls++
	f.lastQ = question
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string]string)} }

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := f.entries[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := f.entries[k]; ok {
			delete(f.entries, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeCache) Close() error { return nil }

func seededChatRoom(t *testing.T, repo *memChatRepository, bodies ...string) uuid.UUID {
	t.Helper()
	rm, members := testRoom(2)
	uc := NewAppendMessageUseCase(repo)
	for _, b := range bodies {
		_, err := uc.Execute(context.Background(), rm, members[0], b)
		require.NoError(t, err)
	}
	return rm.ID
}

func TestSummarizeReturnsModelOutputAndCaches(t *testing.T) {
	repo := newMemChatRepository()
	roomID := seededChatRoom(t, repo, "meet at 7", "station exit 3")
	s := &fakeSummarizer{result: "Meeting at 7, station exit 3."}
	cache := newFakeCache()
	uc := NewSummarizeChatUseCase(repo, s, cache)

	summary, count, err := uc.Execute(context.Background(), roomID, "")
	require.NoError(t, err)
	assert.Equal(t, "Meeting at 7, station exit 3.", summary)
	assert.Equal(t, 2, count)

	// Second call is served from the cache.
	summary2, _, err := uc.Execute(context.Background(), roomID, "")
	require.NoError(t, err)
	assert.Equal(t, summary, summary2)
	assert.Equal(t, 1, s.calls)
}

func TestSummarizeQuestionBypassesCache(t *testing.T) {
	repo := newMemChatRepository()
	roomID := seededChatRoom(t, repo, "meet at 7")
	s := &fakeSummarizer{result: "answer"}
	cache := newFakeCache()
	uc := NewSummarizeChatUseCase(repo, s, cache)

	_, _, err := uc.Execute(context.Background(), roomID, "")
	require.NoError(t, err)
	_, _, err = uc.Execute(context.Background(), roomID, "when do we meet?")
	require.NoError(t, err)

	assert.Equal(t, 2, s.calls)
	assert.Equal(t, "when do we meet?", s.lastQ)
}

func TestSummarizeEmptyRoomReturnsPendingCopy(t *testing.T) {
	repo := newMemChatRepository()
	s := &fakeSummarizer{result: "unused"}
	uc := NewSummarizeChatUseCase(repo, s, nil)

	summary, count, err := uc.Execute(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	assert.Equal(t, SummaryPending, summary)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, s.calls)
}

func TestSummarizeDegradesOnModelFailure(t *testing.T) {
	repo := newMemChatRepository()
	roomID := seededChatRoom(t, repo, "hello")
	s := &fakeSummarizer{err: errors.New("model down")}
	cache := newFakeCache()
	uc := NewSummarizeChatUseCase(repo, s, cache)

	summary, _, err := uc.Execute(context.Background(), roomID, "")
	require.NoError(t, err)
	assert.Equal(t, SummaryUnavailable, summary)
	// Placeholder copy is never cached.
	assert.Empty(t, cache.entries)
}

func TestRefreshOverwritesCachedSummary(t *testing.T) {
	repo := newMemChatRepository()
	roomID := seededChatRoom(t, repo, "hello")
	s := &fakeSummarizer{result: "v1"}
	cache := newFakeCache()
	uc := NewSummarizeChatUseCase(repo, s, cache)

	_, _, err := uc.Execute(context.Background(), roomID, "")
	require.NoError(t, err)

	s.result = "v2"
	require.NoError(t, uc.Refresh(context.Background(), roomID))

	summary, _, err := uc.Execute(context.Background(), roomID, "")
	require.NoError(t, err)
	assert.Equal(t, "v2", summary)
}

func TestRefreshDropsStaleSummaryWhenModelFails(t *testing.T) {
	repo := newMemChatRepository()
	roomID := seededChatRoom(t, repo, "hello")
	s := &fakeSummarizer{result: "v1"}
	cache := newFakeCache()
	uc := NewSummarizeChatUseCase(repo, s, cache)

	_, _, err := uc.Execute(context.Background(), roomID, "")
	require.NoError(t, err)
	require.Len(t, cache.entries, 1)

	// The model going down must not leave a stale digest behind.
	s.err = assert.AnError
	require.NoError(t, uc.Refresh(context.Background(), roomID))
	assert.Empty(t, cache.entries)

	summary, _, err := uc.Execute(context.Background(), roomID, "")
	require.NoError(t, err)
	assert.Equal(t, SummaryUnavailable, summary)
}
