package http

import (
	"iter"
	"net/http"
	"strconv"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
)

type SubjectHandler struct {
	service ports.SubjectService
}

func NewSubjectHandler(service ports.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		service: service,
	}
}

// ListSubjects godoc
// @Summary      Lists subjects
// @Description  Returns every subject, or only those with the given name.
// @Tags         subjects
// @Produce      json
// @Param        name  query     string  false  "Subject name"
// @Success      200   {array}   domain.Subject
// @Router       /subjects [get]
func (h *SubjectHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	var (
		subjects iter.Seq[domain.Subject]
		err      error
	)
	if name := r.URL.Query().Get("name"); name != "" {
		subjects, err = h.service.GetSubjectByName(r.Context(), name)
	} else {
		subjects, err = h.service.GetAllSubjects(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collect(subjects))
}

// GetSubject godoc
// @Summary      Gets a subject
// @Tags         subjects
// @Produce      json
// @Param        subjectId  path      int  true  "Subject ID"
// @Success      200  {object}  domain.Subject
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /subjects/{subjectId} [get]
func (h *SubjectHandler) GetSubject(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "subjectId")
	if err != nil {
		badRequest(w, "invalid subject id")
		return
	}

	subject, err := h.service.GetSubjectByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if subject == nil {
		writeError(w, r, domain.ErrSubjectNotFound)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

// CreateSubject godoc
// @Summary      Creates a subject
// @Description  The subject id is chosen by the client.
// @Tags         subjects
// @Accept       json
// @Produce      json
// @Param        subject  body      domain.Subject  true  "Subject"
// @Success      201      {object}  domain.Subject
// @Failure      400      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /subjects [post]
func (h *SubjectHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var subject domain.Subject
	if err := decodeJSON(r, &subject); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.service.CreateSubject(r.Context(), subject); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/subjects/"+strconv.FormatInt(subject.ID, 10))
	writeJSON(w, http.StatusCreated, subject)
}

// UpdateSubject godoc
// @Summary      Replaces a subject
// @Tags         subjects
// @Accept       json
// @Produce      json
// @Param        subject  body      domain.Subject  true  "Subject"
// @Success      200      {object}  domain.Subject
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /subjects [put]
func (h *SubjectHandler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	var subject domain.Subject
	if err := decodeJSON(r, &subject); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.service.UpdateSubject(r.Context(), subject); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

// DeleteSubject godoc
// @Summary      Deletes a subject
// @Description  Polls of the subject are kept.
// @Tags         subjects
// @Param        subjectId  path  int  true  "Subject ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /subjects/{subjectId} [delete]
func (h *SubjectHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "subjectId")
	if err != nil {
		badRequest(w, "invalid subject id")
		return
	}

	if err := h.service.DeleteSubject(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
