package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskMatchAlert = "notification.match_alert"

// MatchAlertPayload carries everything the worker needs to deliver a
// buyer-match alert without re-querying the analysis.
type MatchAlertPayload struct {
	UserID        string  `json:"userId"`
	MatchCount    int     `json:"matchCount"`
	TopBuyerName  string  `json:"topBuyerName"`
	TopMatchScore int     `json:"topMatchScore"`
	FairPrice     float64 `json:"fairPrice"`
	Currency      string  `json:"currency"`
}

func NewMatchAlertTask(payload MatchAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMatchAlert, data), nil
}

func ParseMatchAlertPayload(task *asynq.Task) (MatchAlertPayload, error) {
	var payload MatchAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MatchAlertPayload{}, err
	}
	return payload, nil
}
