// Package submission hands validated registrations to whatever sits behind the form.
//
// There is no backend in this service: LogSubmitter is the only sink, and it
// records the submission in the structured log without the password.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"regform-go/models"
	"regform-go/utils"
)

// Submitter receives a validated registration.
type Submitter interface {
	Submit(ctx context.Context, s *models.Submission) error
}

// New builds the submission payload for record, hashing its password with cost.
func New(record *models.RegistrationRecord, cost int) (*models.Submission, error) {
	hash, err := utils.HashPassword(record.Password, cost)
	if err != nil {
		return nil, fmt.Errorf("build submission: %w", err)
	}
	return &models.Submission{
		ID:           uuid.New(),
		Record:       record,
		PasswordHash: hash,
		SubmittedAt:  time.Now().UTC(),
	}, nil
}

type LogSubmitter struct {
	logger *slog.Logger
}

func NewLogSubmitter(logger *slog.Logger) *LogSubmitter {
	return &LogSubmitter{logger: logger}
}

func (s *LogSubmitter) Submit(ctx context.Context, sub *models.Submission) error {
	s.logger.InfoContext(ctx, "registration submitted",
		slog.String("submission_id", sub.ID.String()),
		slog.Time("submitted_at", sub.SubmittedAt),
		slog.Any("record", sub.Record),
	)
	return nil
}
