package report

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	. "ascended/pkg/common"
	"ascended/pkg/logger"
	"ascended/pkg/sessions"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=report IReportRepo,IPostRemover

// Upper bound on reports handled by one bulk call.
const maxBulk = 100

type (
	IReportRepo interface {
		Create(context.Context, *Report) error
		List(context.Context) ([]*Report, error)
		Update(ctx context.Context, id string, status Status, notes string) (*Report, error)
		Bulk(ctx context.Context, ids []string, action Action, notes string) ([]*Report, error)
	}

	IPostRemover interface {
		RemovePost(ctx context.Context, postId string) error
	}

	ReportHandler struct {
		Repo    IReportRepo
		Remover IPostRemover
	}

	newReport struct {
		Type           string `json:"type"`
		Reason         string `json:"reason"`
		PostId         string `json:"postId"`
		ReportedUserId string `json:"reportedUserId"`
	}

	updateRequest struct {
		Status         string `json:"status"`
		ModeratorNotes string `json:"moderatorNotes"`
	}

	bulkRequest struct {
		ReportIds []string `json:"reportIds"`
		Action    string   `json:"action"`
		Notes     string   `json:"notes"`
	}

	BulkResult struct {
		Updated int       `json:"updated"`
		Reports []*Report `json:"reports"`
	}
)

func NewReportHandler(repo IReportRepo, remover IPostRemover) *ReportHandler {
	return &ReportHandler{Repo: repo, Remover: remover}
}

func (rh *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	reporter, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		WriteMsg(w, "authentication required", http.StatusUnauthorized)
		return
	}

	req := new(newReport)
	if err := ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse report: %v", err)
		WriteMsg(w, "bad request format", http.StatusBadRequest)
		return
	}

	rep := &Report{
		Type:           Type(req.Type),
		Reason:         req.Reason,
		PostId:         req.PostId,
		ReportedUserId: req.ReportedUserId,
		ReporterId:     reporter.Id,
	}
	if err := rep.Validate(); err != nil {
		WriteMsg(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := rh.Repo.Create(r.Context(), rep); err != nil {
		logger.Log(r.Context()).Errorf("can't store report: %v", err)
		WriteMsg(w, "failed submitting report", http.StatusInternalServerError)
		return
	}
	logger.Log(r.Context()).Infof("report %s (%s) filed by %s", rep.Id, rep.Type, reporter.Id)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	WriteRespJSON(w, rep)
}

func (rh *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := rh.Repo.List(r.Context())
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load reports: %v", err)
		WriteMsg(w, "failed loading reports", http.StatusInternalServerError)
		return
	}
	WriteRespJSON(w, reports)
}

func (rh *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["report_id"]

	req := new(updateRequest)
	if err := ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse report update: %v", err)
		WriteMsg(w, "bad request format", http.StatusBadRequest)
		return
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		WriteMsg(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := rh.Repo.Update(r.Context(), id, status, req.ModeratorNotes)
	if err != nil {
		rh.writeRepoErr(w, r, err)
		return
	}
	rh.audit(r, updated)

	WriteRespJSON(w, updated)
}

func (rh *ReportHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	req := new(bulkRequest)
	if err := ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse bulk action: %v", err)
		WriteMsg(w, "bad request format", http.StatusBadRequest)
		return
	}
	action, err := ParseAction(req.Action)
	if err != nil {
		WriteMsg(w, err.Error(), http.StatusBadRequest)
		return
	}
	ids := dedup(req.ReportIds)
	if len(ids) == 0 {
		WriteMsg(w, "no reports selected", http.StatusBadRequest)
		return
	}
	if len(ids) > maxBulk {
		WriteMsg(w, "too many reports in one action", http.StatusBadRequest)
		return
	}

	updated, err := rh.Repo.Bulk(r.Context(), ids, action, req.Notes)
	if err != nil {
		rh.writeRepoErr(w, r, err)
		return
	}
	for _, rep := range updated {
		rh.audit(r, rep)
	}

	if action == Remove {
		for _, rep := range updated {
			if rep.PostId == "" {
				continue
			}
			if err := rh.Remover.RemovePost(r.Context(), rep.PostId); err != nil {
				logger.Log(r.Context()).Errorf("report %s resolved but post %s wasn't removed: %v", rep.Id, rep.PostId, err)
				WriteMsg(w, "reports resolved, removing content failed", http.StatusInternalServerError)
				return
			}
		}
	}

	WriteRespJSON(w, BulkResult{Updated: len(updated), Reports: updated})
}

func (rh *ReportHandler) writeRepoErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		WriteMsg(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrIllegalTransition):
		WriteMsg(w, err.Error(), http.StatusConflict)
	default:
		logger.Log(r.Context()).Errorf("report/handlers: repo failed: %v", err)
		WriteMsg(w, "failed updating reports", http.StatusInternalServerError)
	}
}

func (rh *ReportHandler) audit(r *http.Request, rep *Report) {
	moderatorId := ""
	if u, err := sessions.GetAuthUser(r.Context()); err == nil {
		moderatorId = u.Id
	}
	logger.Log(r.Context()).Infow("report status changed",
		"report_id", rep.Id,
		"status", rep.Status,
		"moderator_id", moderatorId,
	)
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
