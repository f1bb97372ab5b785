package presenter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/platewatch/waste-console/domain/detection"
	"github.com/platewatch/waste-console/ui/model"
)

type mockQueueBackend struct {
	mu        sync.Mutex
	list      []detection.Detection
	listErr   error
	single    map[string]detection.Detection
	listCalls int
}

func (b *mockQueueBackend) ListDetections(_ context.Context, _ string, _ int) ([]detection.Detection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listCalls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.list, nil
}

func (b *mockQueueBackend) Detection(_ context.Context, id string) (detection.Detection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.single[id]
	if !ok {
		return detection.Detection{}, errors.New("not found")
	}
	return d, nil
}

func (b *mockQueueBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls
}

type mockQueueView struct {
	queues  int
	lastLen int
	pending int
}

func (v *mockQueueView) SetQueue(ds []detection.Detection) { v.queues++; v.lastLen = len(ds) }
func (v *mockQueueView) SetPending(n int)                  { v.pending = n }

func TestRefreshPresenter_RefreshNowPushesQueue(t *testing.T) {
	backend := &mockQueueBackend{list: []detection.Detection{
		{ID: "d-2"},
		{ID: "d-1", ReviewStatus: detection.ReviewDetectionOK},
	}}
	view := &mockQueueView{}
	qm := model.NewQueueModel()
	p := NewRefreshPresenter(qm, nil, backend, view, nil, func() string { return "cam-1" }, 50, 0, nil)
	p.spawn = syncRun

	p.RefreshNow()
	if view.queues != 1 || view.lastLen != 2 {
		t.Fatalf("queue not pushed: queues=%d len=%d", view.queues, view.lastLen)
	}
	if view.pending != 1 {
		t.Fatalf("expected 1 pending, got %d", view.pending)
	}
	if qm.Len() != 2 {
		t.Fatalf("model not updated: %d", qm.Len())
	}
}

func TestRefreshPresenter_FetchFailureKeepsQueue(t *testing.T) {
	backend := &mockQueueBackend{list: []detection.Detection{{ID: "d-1"}}}
	view := &mockQueueView{}
	qm := model.NewQueueModel()
	p := NewRefreshPresenter(qm, nil, backend, view, nil, func() string { return "cam-1" }, 50, 0, nil)
	p.spawn = syncRun

	p.RefreshNow()
	backend.listErr = errors.New("backend down")
	p.RefreshNow()

	if qm.Len() != 1 || view.queues != 1 {
		t.Fatal("a failed fetch must keep the previous queue on screen")
	}
}

func TestRefreshPresenter_NoCameraNoFetch(t *testing.T) {
	backend := &mockQueueBackend{}
	p := NewRefreshPresenter(model.NewQueueModel(), nil, backend, &mockQueueView{}, nil, func() string { return "" }, 50, 0, nil)
	p.spawn = syncRun
	p.RefreshNow()
	if backend.calls() != 0 {
		t.Fatal("no camera selected, no fetch expected")
	}
}

func TestRefreshPresenter_OpenModalGetsFreshRecord(t *testing.T) {
	w := 3.4
	backend := &mockQueueBackend{
		list:   []detection.Detection{{ID: "d-1"}},
		single: map[string]detection.Detection{"d-1": {ID: "d-1", Category: "RICE", InitialWeight: &w, FinalWeight: &w}},
	}
	reviewView := &mockReviewView{}
	rp := NewReviewPresenter(model.NewReviewModel(), &mockSubmitter{}, reviewView, &fakeScheduler{}, nil, nil)
	rp.Open(detection.Detection{ID: "d-1", Description: "Analyzing..."})
	if reviewView.actionsEnabled {
		t.Fatal("precondition: actions disabled while analyzing")
	}

	p := NewRefreshPresenter(model.NewQueueModel(), rp, backend, &mockQueueView{}, nil, func() string { return "cam-1" }, 50, 0, nil)
	p.spawn = syncRun
	p.RefreshNow()

	if reviewView.refreshes != 1 {
		t.Fatalf("expected the modal to refresh, got %d", reviewView.refreshes)
	}
	if !reviewView.actionsEnabled {
		t.Fatal("pipeline completion should enable the modal actions")
	}
}

func TestRefreshPresenter_FetchAppliesResultThroughPost(t *testing.T) {
	backend := &mockQueueBackend{list: []detection.Detection{{ID: "d-1"}}}
	view := &mockQueueView{}
	qm := model.NewQueueModel()
	var posted []func()
	post := func(fn func()) { posted = append(posted, fn) }
	p := NewRefreshPresenter(qm, nil, backend, view, nil, func() string { return "cam-1" }, 50, 0, post)
	p.spawn = syncRun

	p.RefreshNow()
	if backend.calls() != 1 {
		t.Fatal("fetch should have been issued")
	}
	if qm.Len() != 0 || view.queues != 0 {
		t.Fatal("results must only apply once the callback reaches the UI thread")
	}
	for _, fn := range posted {
		fn()
	}
	if qm.Len() != 1 || view.queues != 1 {
		t.Fatal("posted callback should apply the fetched queue")
	}
}

func TestRefreshPresenter_OverlappingCycleSkipped(t *testing.T) {
	backend := &mockQueueBackend{list: []detection.Detection{{ID: "d-1"}}}
	var pending []func()
	p := NewRefreshPresenter(model.NewQueueModel(), nil, backend, &mockQueueView{}, nil, func() string { return "cam-1" }, 50, 0, nil)
	// Hold the fetch so the first cycle is still in flight.
	p.spawn = func(fn func()) { pending = append(pending, fn) }

	p.RefreshNow()
	p.RefreshNow()
	for _, fn := range pending {
		fn()
	}
	if backend.calls() != 1 {
		t.Fatalf("overlapping cycle should be skipped, got %d fetches", backend.calls())
	}

	p.RefreshNow()
	pending[len(pending)-1]()
	if backend.calls() != 2 {
		t.Fatal("the next cycle after completion should fetch again")
	}
}

func TestRefreshPresenter_CameraSwitchDropsStaleResult(t *testing.T) {
	backend := &mockQueueBackend{list: []detection.Detection{{ID: "d-1"}}}
	view := &mockQueueView{}
	qm := model.NewQueueModel()
	camera := "cam-1"
	var posted []func()
	post := func(fn func()) { posted = append(posted, fn) }
	p := NewRefreshPresenter(qm, nil, backend, view, nil, func() string { return camera }, 50, 0, post)
	p.spawn = syncRun

	p.RefreshNow()
	camera = "cam-2"
	for _, fn := range posted {
		fn()
	}
	if qm.Len() != 0 || view.queues != 0 {
		t.Fatal("a fetch for the previous camera must not land after a switch")
	}
}

func TestRefreshPresenter_PollLoopStartsAndStops(t *testing.T) {
	backend := &mockQueueBackend{list: []detection.Detection{{ID: "d-1"}}}
	qm := model.NewQueueModel()
	// Inline post and spawn keep every cycle on the loop goroutine.
	p := NewRefreshPresenter(qm, nil, backend, &mockQueueView{}, nil, func() string { return "cam-1" }, 50, 20*time.Millisecond, nil)
	p.spawn = syncRun

	p.Start()
	p.Start() // idempotent
	time.Sleep(70 * time.Millisecond)
	p.Stop()
	p.Stop() // idempotent

	calls := backend.calls()
	if calls == 0 {
		t.Fatal("poll loop never fetched")
	}
	time.Sleep(50 * time.Millisecond)
	if backend.calls() != calls {
		t.Fatal("poll loop kept fetching after stop")
	}
}
