package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"sparklean/models"
)

const (
	TypeEmailSend  = "email:send"
	TypePromoSweep = "promo:sweep"
)

// NewConfirmationEmailTask wraps a booking into the payload the email worker
// consumes.
func NewConfirmationEmailTask(booking *models.Booking) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(booking)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailSend, b)
	opts := []asynq.Option{asynq.MaxRetry(5)}

	return task, opts, nil
}

// NewPromoSweepTask builds the periodic expired-claim sweep task.
func NewPromoSweepTask() *asynq.Task {
	return asynq.NewTask(TypePromoSweep, nil)
}
