package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/vncsmyrnk/cooperative/internal/adapters/handler/http/docs"
)

type Handlers struct {
	Subjects *SubjectHandler
	Polls    *PollHandler
	Votes    *VoteHandler
	Health   *HealthHandler
}

func NewHandler(h Handlers, rateLimit RateLimitConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health.Health)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(rateLimit))

		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", h.Subjects.ListSubjects)
			r.Post("/", h.Subjects.CreateSubject)
			r.Put("/", h.Subjects.UpdateSubject)
			r.Get("/{subjectId}", h.Subjects.GetSubject)
			r.Delete("/{subjectId}", h.Subjects.DeleteSubject)

			r.Route("/{subjectId}/polls", func(r chi.Router) {
				r.Get("/", h.Polls.ListPolls)
				r.Post("/", h.Polls.CreatePoll)
				r.Put("/", h.Polls.UpdatePoll)

				r.Route("/{pollId}", func(r chi.Router) {
					r.Get("/", h.Polls.GetPoll)
					r.Delete("/", h.Polls.DeletePoll)

					r.Route("/votes", func(r chi.Router) {
						r.Get("/", h.Votes.ListVotes)
						r.Post("/", h.Votes.VoteOnPoll)
						r.Get("/{voter}", h.Votes.GetVote)
					})
				})
			})
		})
	})

	return r
}
