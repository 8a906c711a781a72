package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"prime-job-service/internal/entity"
	"prime-job-service/internal/service"
)

type Handler struct {
	jobSvc *service.JobService
}

func NewHandler(jobSvc *service.JobService) *Handler {
	return &Handler{jobSvc: jobSvc}
}

type limitDTO struct {
	Limit int64 `json:"limit"`
}

// parseLimit accepts the limit from the JSON body or, as a fallback, the
// query string.
func parseLimit(r *http.Request) int64 {
	var dto limitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err == nil && dto.Limit != 0 {
		return dto.Limit
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	}
	return 0
}

type enqueueResp struct {
	JobID     string            `json:"jobId"`
	FromCache bool              `json:"fromCache"`
	Status    entity.JobState   `json:"status"`
	Progress  float64           `json:"progress"`
	Result    *entity.JobResult `json:"result,omitempty"`
}

type statusResp struct {
	JobID           string            `json:"jobId"`
	Status          entity.JobState   `json:"status"`
	Progress        float64           `json:"progress"`
	PrimeCountSoFar int64             `json:"primeCountSoFar"`
	Result          *entity.JobResult `json:"result,omitempty"`
}

type notFoundResp struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

type runsResp struct {
	Runs []entity.JobRun `json:"runs"`
}

// EnqueueJob godoc
// @Summary Enqueue a prime-count job
// @Description Admits a job for background execution, or answers from the result cache / in-flight status without dispatching new work.
// @Tags primes
// @Accept json
// @Produce json
// @Param request body limitDTO true "job parameters (limit >= 2)"
// @Success 200 {object} enqueueResp "served from cache"
// @Success 202 {object} enqueueResp "queued or already in flight"
// @Failure 400 {object} apiError
// @Failure 500 {object} apiError
// @Router /primes/queue [post]
func (h *Handler) EnqueueJob(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	view, err := h.jobSvc.Enqueue(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLimit) {
			writeErr(w, http.StatusBadRequest, "provide limit >= 2")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := enqueueResp{
		JobID:     view.JobID,
		FromCache: view.FromCache,
		Status:    view.Status,
		Progress:  view.Progress,
		Result:    view.Result,
	}
	if view.FromCache {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

// JobStatus godoc
// @Summary Poll job status
// @Description Merged view over the status and result records; either record alone is enough for an answer.
// @Tags primes
// @Produce json
// @Param jobId query string true "job id"
// @Success 200 {object} statusResp
// @Failure 400 {object} apiError
// @Failure 404 {object} notFoundResp
// @Router /primes/status [get]
func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		writeErr(w, http.StatusBadRequest, "jobId is required")
		return
	}

	view, err := h.jobSvc.Status(r.Context(), jobID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundResp{JobID: jobID, Status: "notFound"})
		return
	}

	writeJSON(w, http.StatusOK, statusResp{
		JobID:           view.JobID,
		Status:          view.Status,
		Progress:        view.Progress,
		PrimeCountSoFar: view.PrimeCountSoFar,
		Result:          view.Result,
	})
}

// DirectCount godoc
// @Summary Count primes synchronously
// @Description Runs the computation inline and blocks until done. Baseline path, no queue or cache.
// @Tags primes
// @Accept json
// @Produce json
// @Param request body limitDTO true "job parameters (limit >= 2)"
// @Success 200 {object} primes.Result
// @Failure 400 {object} apiError
// @Router /primes/direct [post]
func (h *Handler) DirectCount(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	res, err := h.jobSvc.Direct(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLimit) {
			writeErr(w, http.StatusBadRequest, "provide limit >= 2")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// RecentRuns godoc
// @Summary List recently finished runs
// @Tags jobs
// @Produce json
// @Param limit query int false "max rows (default 20, cap 100)"
// @Success 200 {object} runsResp
// @Failure 500 {object} apiError
// @Router /jobs/runs [get]
func (h *Handler) RecentRuns(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			n = v
		}
	}

	runs, err := h.jobSvc.RecentRuns(r.Context(), n)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "run history unavailable")
		return
	}
	if runs == nil {
		runs = []entity.JobRun{}
	}

	writeJSON(w, http.StatusOK, runsResp{Runs: runs})
}
