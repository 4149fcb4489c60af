package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/scms-go/internal/cache"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/testutil"
)

type fakeFetcher struct {
	fetches    atomic.Int64
	increments atomic.Int64
	delay      time.Duration
	getErr     error
	incErr     error
	status     string
	started    chan struct{}
	release    chan struct{}
	startOnce  sync.Once
}

func (f *fakeFetcher) GetPost(ctx context.Context, id int64) (model.Post, error) {
	f.fetches.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.release != nil {
		f.startOnce.Do(func() { close(f.started) })
		select {
		case <-f.release:
		case <-ctx.Done():
			return model.Post{}, ctx.Err()
		}
	}
	if f.getErr != nil {
		return model.Post{}, f.getErr
	}
	status := f.status
	if status == "" {
		status = model.PostStatusPublished
	}
	return model.Post{ID: id, Title: "Lễ khai giảng", Content: "<p>Nội dung đầy đủ</p>", Status: status}, nil
}

func (f *fakeFetcher) IncrementPostViews(context.Context, int64) error {
	f.increments.Add(1)
	return f.incErr
}

func newTestLoader(t *testing.T, f DetailFetcher) *DetailLoader {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = c.Close() })
	return NewDetailLoader(f, c, testutil.TestLoggerSilent())
}

func TestDetailLoader_LoadsBodyOnce(t *testing.T) {
	f := &fakeFetcher{}
	l := newTestLoader(t, f)
	summary := model.Post{ID: 7, Title: "Lễ khai giảng"}

	first, err := l.Load(context.Background(), summary)
	require.NoError(t, err)
	assert.Equal(t, "<p>Nội dung đầy đủ</p>", first.Content)

	second, err := l.Load(context.Background(), summary)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	l.Wait()
	assert.Equal(t, int64(1), f.fetches.Load(), "second load must be served from cache")
	assert.Equal(t, int64(2), f.increments.Load(), "every open counts a view")
}

func TestDetailLoader_SummaryWithBody(t *testing.T) {
	f := &fakeFetcher{}
	l := newTestLoader(t, f)

	full := model.Post{ID: 3, Content: "<p>đã có</p>"}
	got, err := l.Load(context.Background(), full)
	require.NoError(t, err)
	assert.Equal(t, full, got)

	l.Wait()
	assert.Zero(t, f.fetches.Load())
	assert.Equal(t, int64(1), f.increments.Load())
}

func TestDetailLoader_CoalescesConcurrentLoads(t *testing.T) {
	f := &fakeFetcher{delay: 50 * time.Millisecond}
	l := newTestLoader(t, f)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := l.Load(context.Background(), model.Post{ID: 9})
			assert.NoError(t, err)
			assert.Equal(t, int64(9), p.ID)
		}()
	}
	wg.Wait()
	l.Wait()

	assert.Equal(t, int64(1), f.fetches.Load())
	assert.Equal(t, int64(10), f.increments.Load())
}

func TestDetailLoader_FirstCallerCancelDoesNotFailOthers(t *testing.T) {
	f := &fakeFetcher{started: make(chan struct{}), release: make(chan struct{})}
	l := newTestLoader(t, f)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := l.Load(firstCtx, model.Post{ID: 12})
		firstErr <- err
	}()
	<-f.started

	type result struct {
		post model.Post
		err  error
	}
	second := make(chan result, 1)
	go func() {
		p, err := l.Load(context.Background(), model.Post{ID: 12})
		second <- result{p, err}
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	// Give the second caller time to join the in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(f.release)

	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, int64(12), res.post.ID)
	assert.Equal(t, int64(1), f.fetches.Load(), "both callers share one fetch")
	l.Wait()
}

func TestDetailLoader_LoadPublished(t *testing.T) {
	f := &fakeFetcher{}
	l := newTestLoader(t, f)

	p, err := l.LoadPublished(context.Background(), 31)
	require.NoError(t, err)
	assert.Equal(t, int64(31), p.ID)
	assert.NotEmpty(t, p.Content)

	l.Wait()
	assert.Equal(t, int64(1), f.increments.Load())
}

func TestDetailLoader_LoadPublishedRejectsDrafts(t *testing.T) {
	f := &fakeFetcher{status: model.PostStatusDraft}
	l := newTestLoader(t, f)

	_, err := l.LoadPublished(context.Background(), 32)
	assert.ErrorIs(t, err, ErrNotPublished)

	l.Wait()
	assert.Zero(t, f.increments.Load(), "drafts count no view")
}

func TestDetailLoader_FetchError(t *testing.T) {
	f := &fakeFetcher{getErr: service.ErrNotFound}
	l := newTestLoader(t, f)

	_, err := l.Load(context.Background(), model.Post{ID: 404})
	assert.True(t, errors.Is(err, service.ErrNotFound))

	l.Wait()
	assert.Zero(t, f.increments.Load(), "a failed load counts no view")

	// Failures are not cached.
	_, _ = l.Load(context.Background(), model.Post{ID: 404})
	assert.Equal(t, int64(2), f.fetches.Load())
}

func TestDetailLoader_IncrementFailureIgnored(t *testing.T) {
	f := &fakeFetcher{incErr: errors.New("database is locked")}
	l := newTestLoader(t, f)

	p, err := l.Load(context.Background(), model.Post{ID: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, p.Content)
	l.Wait()
}

func TestDetailLoader_Invalidate(t *testing.T) {
	f := &fakeFetcher{}
	l := newTestLoader(t, f)
	ctx := context.Background()

	_, _ = l.Load(ctx, model.Post{ID: 1})
	_, _ = l.Load(ctx, model.Post{ID: 2})
	l.Invalidate(ctx)
	_, _ = l.Load(ctx, model.Post{ID: 1})
	assert.Equal(t, int64(3), f.fetches.Load())

	l.Forget(ctx, 1)
	_, _ = l.Load(ctx, model.Post{ID: 1})
	_, _ = l.Load(ctx, model.Post{ID: 2})
	assert.Equal(t, int64(5), f.fetches.Load())
	l.Wait()
}

func TestDetailLoader_WithRepository(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	repo := service.NewRepository(db, service.DefaultPostListLimit)
	ctx := t.Context()

	created, err := repo.CreatePost(ctx, model.Post{
		Title:   "Hội thi giáo viên dạy giỏi",
		Content: "<p>Chi tiết hội thi</p>",
		Status:  model.PostStatusPublished,
	})
	require.NoError(t, err)

	summaries, err := repo.ListPostSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.False(t, summaries[0].HasBody())

	l := newTestLoader(t, repo)
	full, err := l.Load(ctx, summaries[0])
	require.NoError(t, err)
	assert.Equal(t, "<p>Chi tiết hội thi</p>", full.Content)
	l.Wait()

	after, err := repo.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.Views)
}

func TestPostKey(t *testing.T) {
	assert.Equal(t, "post:42", PostKey(42))
}
