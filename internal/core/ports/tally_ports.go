package ports

import (
	"context"

	"github.com/vncsmyrnk/cooperative/internal/core/domain"
)

type TallyService interface {
	TallySubject(ctx context.Context, subjectID int64) ([]domain.PollTally, error)
}
