package http

import (
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type PollHandler struct {
	polls ports.PollService
	votes ports.VoteService
	clock ports.Clock
}

func NewPollHandler(polls ports.PollService, votes ports.VoteService, clock ports.Clock) *PollHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &PollHandler{
		polls: polls,
		votes: votes,
		clock: clock,
	}
}

type createPollRequest struct {
	Name      string                     `json:"name"`
	StartDate domain.Optional[time.Time] `json:"start_date" swaggertype:"string" format:"date-time"`
	EndDate   domain.Optional[time.Time] `json:"end_date" swaggertype:"string" format:"date-time"`
}

type updatePollRequest struct {
	ID        domain.Optional[int64]     `json:"id" swaggertype:"integer"`
	Name      domain.Optional[string]    `json:"name" swaggertype:"string"`
	StartDate domain.Optional[time.Time] `json:"start_date" swaggertype:"string" format:"date-time"`
	EndDate   domain.Optional[time.Time] `json:"end_date" swaggertype:"string" format:"date-time"`
}

type pollResponse struct {
	domain.Poll
	State domain.PollState `json:"state"`
	Votes domain.VoteCount `json:"votes"`
}

// ListPolls godoc
// @Summary      Lists the polls of a subject
// @Description  Returns an empty list when the subject does not exist.
// @Tags         polls
// @Produce      json
// @Param        subjectId  path      int     true   "Subject ID"
// @Param        name       query     string  false  "Poll name"
// @Success      200        {array}   domain.Poll
// @Failure      400        {object}  errorResponse
// @Router       /subjects/{subjectId}/polls [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	subjectID, err := int64Param(r, "subjectId")
	if err != nil {
		badRequest(w, "invalid subject id")
		return
	}

	var polls iter.Seq[domain.Poll]
	if name := r.URL.Query().Get("name"); name != "" {
		polls, err = h.polls.GetPollByNameAndSubjectID(r.Context(), name, subjectID)
	} else {
		polls, err = h.polls.GetPollBySubjectID(r.Context(), subjectID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collect(polls))
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Description  The start date defaults to now and the end date to one minute after the start date.
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        subjectId  path      int                true  "Subject ID"
// @Param        poll       body      createPollRequest  true  "Poll"
// @Success      201        {object}  domain.Poll
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /subjects/{subjectId}/polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	subjectID, err := int64Param(r, "subjectId")
	if err != nil {
		badRequest(w, "invalid subject id")
		return
	}

	var req createPollRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if !req.StartDate.Set {
		req.StartDate = domain.Some(h.clock.Now())
	}

	poll, err := h.polls.CreatePoll(r.Context(), ports.CreatePollInput{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		SubjectID: domain.Some(subjectID),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/subjects/%d/polls/%d", poll.SubjectID, poll.ID))
	writeJSON(w, http.StatusCreated, poll)
}

// UpdatePoll godoc
// @Summary      Updates a poll
// @Description  Only the fields present in the body are changed.
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        subjectId  path      int                true  "Subject ID"
// @Param        poll       body      updatePollRequest  true  "Poll"
// @Success      200        {object}  domain.Poll
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /subjects/{subjectId}/polls [put]
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	subjectID, err := int64Param(r, "subjectId")
	if err != nil {
		badRequest(w, "invalid subject id")
		return
	}

	var req updatePollRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	poll, err := h.polls.UpdatePoll(r.Context(), ports.UpdatePollInput{
		ID:        req.ID,
		SubjectID: domain.Some(subjectID),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, poll)
}

// GetPoll godoc
// @Summary      Gets a poll with its vote count
// @Tags         polls
// @Produce      json
// @Param        subjectId  path      int  true  "Subject ID"
// @Param        pollId     path      int  true  "Poll ID"
// @Success      200        {object}  pollResponse
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /subjects/{subjectId}/polls/{pollId} [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	subjectID, pollID, ok := pollParams(w, r)
	if !ok {
		return
	}

	poll, err := h.polls.GetPollByIDAndSubjectID(r.Context(), pollID, subjectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if poll == nil {
		writeError(w, r, domain.ErrPollNotFound)
		return
	}

	count, err := h.votes.GetVoteCountForPoll(r.Context(), subjectID, pollID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pollResponse{
		Poll:  *poll,
		State: poll.StateAt(h.clock.Now()),
		Votes: count,
	})
}

// DeletePoll godoc
// @Summary      Deletes a poll and its votes
// @Tags         polls
// @Param        subjectId  path  int  true  "Subject ID"
// @Param        pollId     path  int  true  "Poll ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /subjects/{subjectId}/polls/{pollId} [delete]
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	subjectID, pollID, ok := pollParams(w, r)
	if !ok {
		return
	}

	if err := h.polls.DeletePollByIDAndSubjectID(r.Context(), pollID, subjectID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pollParams(w http.ResponseWriter, r *http.Request) (subjectID, pollID int64, ok bool) {
	subjectID, err := int64Param(r, "subjectId")
	if err != nil {
		badRequest(w, "invalid subject id")
		return 0, 0, false
	}
	pollID, err = int64Param(r, "pollId")
	if err != nil {
		badRequest(w, "invalid poll id")
		return 0, 0, false
	}
	return subjectID, pollID, true
}
