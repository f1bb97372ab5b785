package app

import (
	"log/slog"

	"github.com/platewatch/waste-console/api"
	"github.com/platewatch/waste-console/config"
	"github.com/platewatch/waste-console/domain/review"
	"github.com/platewatch/waste-console/store"
	"github.com/platewatch/waste-console/ui/model"
	"github.com/platewatch/waste-console/ui/presenter"
	"github.com/platewatch/waste-console/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config *config.Config
	Roster config.Roster
	Logger *slog.Logger

	Client *api.Client
	Audit  *store.AuditStore

	Editor *model.EditorModel
	Review *model.ReviewModel
	Queue  *model.QueueModel

	Dispatcher *review.Dispatcher

	EditorPresenter  *presenter.EditorPresenter
	ReviewPresenter  *presenter.ReviewPresenter
	RefreshPresenter *presenter.RefreshPresenter

	RootView    *view.RootView
	EditorView  *view.EditorView
	ReviewModal *view.ReviewModal
}

// BuildContainer constructs the non-UI components. Widget construction and
// presenter/view wiring happen in the app wrapper once Tk is up.
func BuildContainer(cfg *config.Config, roster config.Roster, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, Roster: roster, Logger: logger}

	c.Client = api.NewClient(cfg.BackendURL, cfg.APIKey, cfg.Timeout())

	audit, err := store.Open(cfg.AuditDBPath)
	if err != nil {
		// The console works without a local audit trail; reviews still
		// reach the backend.
		logger.Warn("audit store unavailable", "path", cfg.AuditDBPath, "error", err)
	} else {
		c.Audit = audit
	}

	c.Editor = model.NewEditorModel()
	c.Review = model.NewReviewModel()
	c.Queue = model.NewQueueModel()

	var auditor review.Auditor
	if c.Audit != nil {
		auditor = c.Audit
	}
	c.Dispatcher = review.NewDispatcher(c.Client, auditor, logger)

	return c
}

// Close releases container-held resources.
func (c *AppContainer) Close() {
	if c == nil {
		return
	}
	if c.RefreshPresenter != nil {
		c.RefreshPresenter.Stop()
	}
	if c.Audit != nil {
		_ = c.Audit.Close()
	}
}
