package moderation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"ascended/pkg/client"
	"ascended/pkg/client/notify"
	"ascended/pkg/client/querycache"
	"ascended/pkg/logger"
	"ascended/pkg/report"
)

type bulkRequest struct {
	ReportIds []string      `json:"reportIds"`
	Action    report.Action `json:"action"`
	Notes     string        `json:"notes"`
}

type updateRequest struct {
	Status         report.Status `json:"status"`
	ModeratorNotes string        `json:"moderatorNotes,omitempty"`
}

// Queue is the moderator's view of the reports: filters, the bulk
// selection and the notes attached to the next bulk action.
type Queue struct {
	api      *client.Client
	cache    *querycache.Cache
	notifier notify.Notifier

	mu       sync.Mutex
	reports  []*report.Report
	status   string
	typ      string
	selected map[string]bool
	notes    string
}

func New(api *client.Client, cache *querycache.Cache, n notify.Notifier) *Queue {
	return &Queue{
		api:      api,
		cache:    cache,
		notifier: n,
		status:   All,
		typ:      All,
		selected: map[string]bool{},
	}
}

// Load fetches the reports, newest first, through the query cache.
func (q *Queue) Load(ctx context.Context) error {
	reports, err := querycache.Fetch(ctx, q.cache, client.ReportsKey, func(ctx context.Context) ([]*report.Report, error) {
		list := []*report.Report{}
		if err := q.api.Request(ctx, http.MethodGet, "/api/admin/reports", nil, &list); err != nil {
			return nil, err
		}
		return list, nil
	})
	if err != nil {
		return fmt.Errorf("moderation: can't load reports: %w", err)
	}

	q.mu.Lock()
	q.reports = reports
	q.prune()
	q.mu.Unlock()
	return nil
}

func (q *Queue) reload(ctx context.Context) {
	q.cache.Invalidate(client.ReportsKey)
	if err := q.Load(ctx); err != nil {
		logger.Log(ctx).Warnf("moderation: reload failed: %v", err)
	}
}

func (q *Queue) SetStatusFilter(s string) error {
	if s != All {
		if _, err := report.ParseStatus(s); err != nil {
			return err
		}
	}
	q.mu.Lock()
	q.status = s
	q.prune()
	q.mu.Unlock()
	return nil
}

func (q *Queue) SetTypeFilter(t string) error {
	if t != All {
		if _, err := report.ParseType(t); err != nil {
			return err
		}
	}
	q.mu.Lock()
	q.typ = t
	q.prune()
	q.mu.Unlock()
	return nil
}

// prune drops selected ids that are no longer visible.
func (q *Queue) prune() {
	visible := map[string]bool{}
	for _, r := range q.visible() {
		visible[r.Id] = true
	}
	for id := range q.selected {
		if !visible[id] {
			delete(q.selected, id)
		}
	}
}

func (q *Queue) visible() []*report.Report {
	return Filter(q.reports, q.status, q.typ)
}

func (q *Queue) Visible() []*report.Report {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.visible()
}

// SelectAll selects exactly the visible reports.
func (q *Queue) SelectAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.selected = map[string]bool{}
	for _, r := range q.visible() {
		q.selected[r.Id] = true
	}
}

func (q *Queue) SelectNone() {
	q.mu.Lock()
	q.selected = map[string]bool{}
	q.mu.Unlock()
}

// ToggleOne flips the selection of a visible report. Hidden ids are ignored.
func (q *Queue) ToggleOne(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, r := range q.visible() {
		if r.Id != id {
			continue
		}
		if q.selected[id] {
			delete(q.selected, id)
		} else {
			q.selected[id] = true
		}
		return
	}
}

// Selected returns the selected ids in display order.
func (q *Queue) Selected() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.selectedIds()
}

func (q *Queue) selectedIds() []string {
	ids := []string{}
	for _, r := range q.visible() {
		if q.selected[r.Id] {
			ids = append(ids, r.Id)
		}
	}
	return ids
}

func (q *Queue) SetNotes(s string) {
	q.mu.Lock()
	q.notes = s
	q.mu.Unlock()
}

func (q *Queue) Notes() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.notes
}

// BulkAction applies action to every selected report in one request.
func (q *Queue) BulkAction(ctx context.Context, action report.Action) (*report.BulkResult, error) {
	if _, err := report.ParseAction(string(action)); err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrValidation, err)
	}

	q.mu.Lock()
	ids, notes := q.selectedIds(), q.notes
	q.mu.Unlock()
	if len(ids) == 0 {
		q.fail("Nothing selected", "Select at least one report.")
		return nil, client.ErrNoSelection
	}

	res := new(report.BulkResult)
	err := q.api.Request(ctx, http.MethodPost, "/api/admin/reports/bulk", bulkRequest{
		ReportIds: ids,
		Action:    action,
		Notes:     notes,
	}, res)
	if err != nil {
		logger.Log(ctx).Warnf("moderation: bulk %s of %d reports failed: %v", action, len(ids), err)
		q.fail("Bulk action failed", client.UserMessage(err))
		q.reload(ctx)
		return nil, err
	}

	q.mu.Lock()
	q.selected = map[string]bool{}
	q.notes = ""
	q.mu.Unlock()
	q.reload(ctx)

	q.notifier.Notify(notify.Toast{
		Kind:        notify.Success,
		Title:       "Reports updated",
		Description: fmt.Sprintf("%d reports %s.", res.Updated, action.TargetStatus()),
	})
	return res, nil
}

// UpdateStatus moves one report forward. Backward moves are refused locally.
func (q *Queue) UpdateStatus(ctx context.Context, id string, status report.Status, notes string) (*report.Report, error) {
	if _, err := report.ParseStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrValidation, err)
	}

	q.mu.Lock()
	var current *report.Report
	for _, r := range q.reports {
		if r.Id == id {
			current = r
			break
		}
	}
	q.mu.Unlock()
	if current == nil {
		return nil, report.ErrNotFound
	}
	if !report.CanTransition(current.Status, status) {
		err := fmt.Errorf("%w: %s to %s", report.ErrIllegalTransition, current.Status, status)
		q.fail("Can't update report", err.Error())
		return nil, err
	}

	updated := new(report.Report)
	err := q.api.Request(ctx, http.MethodPatch, "/api/admin/reports/"+url.PathEscape(id), updateRequest{
		Status:         status,
		ModeratorNotes: notes,
	}, updated)
	if err != nil {
		q.fail("Can't update report", client.UserMessage(err))
		q.reload(ctx)
		return nil, err
	}

	q.reload(ctx)
	q.notifier.Notify(notify.Toast{Kind: notify.Success, Title: "Report updated"})
	return updated, nil
}

func (q *Queue) fail(title, description string) {
	q.notifier.Notify(notify.Toast{Kind: notify.Failure, Title: title, Description: description})
}
