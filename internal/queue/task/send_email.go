package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendOtpEmailTaskName  = "sendOtpEmailTask"
	SendOtpEmailQueueName = "sendOtpEmailQueue"
)

type SendOtpEmail struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func NewSendOtpEmailTask(email string, code string) (*asynq.Task, error) {
	var data SendOtpEmail
	data.Email = email
	data.Code = code

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendOtpEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendOtpEmailQueueName),
	), nil
}
