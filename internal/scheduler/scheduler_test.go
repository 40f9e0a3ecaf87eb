package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type stubConfig struct {
	redisURL string
}

func (s stubConfig) GetRedisURL() string      { return s.redisURL }
func (s stubConfig) GetRedisTLSInsecure() bool { return false }
func (s stubConfig) GetAsynqQueueName() string { return "default" }
func (s stubConfig) GetAsynqConcurrency() int  { return 1 }

func TestMatchAlertPayloadRoundTrip(t *testing.T) {
	payload := MatchAlertPayload{
		UserID:        "u1",
		MatchCount:    3,
		TopBuyerName:  "Mwanza Fish Co",
		TopMatchScore: 78,
		FairPrice:     5200,
		Currency:      "TZS",
	}

	task, err := NewMatchAlertTask(payload)
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if task.Type() != TaskMatchAlert {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	decoded, err := ParseMatchAlertPayload(task)
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if decoded != payload {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, payload)
	}
}

func TestParseMatchAlertPayloadRejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskMatchAlert, []byte("not json"))

	if _, err := ParseMatchAlertPayload(task); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClientEnqueuesMatchAlert(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(stubConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	err = client.EnqueueMatchAlert(context.Background(), MatchAlertPayload{
		UserID:     "u1",
		MatchCount: 2,
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	info, err := inspector.GetQueueInfo("default")
	if err != nil {
		t.Fatalf("queue info: %v", err)
	}
	if info.Pending != 1 {
		t.Fatalf("expected 1 pending task, got %d", info.Pending)
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
}
