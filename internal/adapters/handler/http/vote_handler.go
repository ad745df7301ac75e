package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	Voter uuid.UUID `json:"voter"`
	Agree bool      `json:"agree"`
}

// ListVotes godoc
// @Summary      Lists the votes of a poll
// @Tags         votes
// @Produce      json
// @Param        subjectId  path      int  true  "Subject ID"
// @Param        pollId     path      int  true  "Poll ID"
// @Success      200        {array}   domain.Vote
// @Failure      400        {object}  errorResponse
// @Router       /subjects/{subjectId}/polls/{pollId}/votes [get]
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	subjectID, pollID, ok := pollParams(w, r)
	if !ok {
		return
	}

	votes, err := h.service.GetVoteBySubjectIDPollID(r.Context(), subjectID, pollID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collect(votes))
}

// VoteOnPoll godoc
// @Summary      Votes on a poll
// @Description  A voter votes once per poll, and only before the poll end date.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        subjectId  path      int          true  "Subject ID"
// @Param        pollId     path      int          true  "Poll ID"
// @Param        vote       body      voteRequest  true  "Vote"
// @Success      201        {object}  domain.Vote
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /subjects/{subjectId}/polls/{pollId}/votes [post]
func (h *VoteHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	subjectID, pollID, ok := pollParams(w, r)
	if !ok {
		return
	}

	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	vote, err := h.service.CreateVote(r.Context(), ports.CreateVoteInput{
		Voter:     req.Voter,
		Agree:     req.Agree,
		SubjectID: domain.Some(subjectID),
		PollID:    domain.Some(pollID),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/subjects/%d/polls/%d/votes/%s", vote.SubjectID, vote.PollID, vote.Voter))
	writeJSON(w, http.StatusCreated, vote)
}

// GetVote godoc
// @Summary      Gets the vote of a voter
// @Tags         votes
// @Produce      json
// @Param        subjectId  path      int     true  "Subject ID"
// @Param        pollId     path      int     true  "Poll ID"
// @Param        voter      path      string  true  "Voter UUID"
// @Success      200        {object}  domain.Vote
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /subjects/{subjectId}/polls/{pollId}/votes/{voter} [get]
func (h *VoteHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	subjectID, pollID, ok := pollParams(w, r)
	if !ok {
		return
	}
	voter, err := uuid.Parse(chi.URLParam(r, "voter"))
	if err != nil {
		badRequest(w, "invalid voter")
		return
	}

	vote, err := h.service.GetVoteBySubjectIDPollIDVoter(r.Context(), subjectID, pollID, voter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if vote == nil {
		writeError(w, r, domain.ErrVoteNotFound)
		return
	}
	writeJSON(w, http.StatusOK, vote)
}
