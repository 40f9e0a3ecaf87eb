// Package notification delivers user-facing alerts. The analysis
// pipeline enqueues match alerts onto the task queue; the worker picks
// them up and delivers them by email. Welcome mail is driven by the
// UserRegistered event.
package notification

import (
	"context"
	"fmt"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/internal/auth/repository"
	"samakicash_backend/internal/email"
	"samakicash_backend/internal/events"
	"samakicash_backend/internal/scheduler"
	"samakicash_backend/platform/logger"

	"github.com/google/uuid"
)

// UserLookup resolves a user ID to an account for delivery addressing.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (repository.User, error)
}

// Service delivers notifications.
type Service struct {
	users  UserLookup
	sender email.Sender
	log    *logger.Logger
}

func NewService(users UserLookup, sender email.Sender, log *logger.Logger) *Service {
	return &Service{users: users, sender: sender, log: log}
}

// MatchAlertMessage renders the alert text for a completed match run.
func MatchAlertMessage(matchCount int, topBuyerName string, topScore int) string {
	message := fmt.Sprintf("Found %d potential buyers for your catch!", matchCount)
	if matchCount > 0 {
		if topBuyerName == "" {
			topBuyerName = "Unknown"
		}
		message += fmt.Sprintf(" Top match: %s - Score: %d%%", topBuyerName, topScore)
	}
	return message
}

// DeliverMatchAlert emails the alert to the analyzed catch's owner.
func (s *Service) DeliverMatchAlert(ctx context.Context, payload scheduler.MatchAlertPayload) error {
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		// Seed and demo users may carry non-UUID IDs; log the alert
		// instead of failing the task forever.
		s.log.Info("match alert for unaddressable user",
			"userId", payload.UserID, "matches", payload.MatchCount)
		return nil
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve alert recipient: %w", err)
	}

	message := MatchAlertMessage(payload.MatchCount, payload.TopBuyerName, payload.TopMatchScore)
	if err := s.sender.SendMatchAlertEmail(ctx, user.Email, message); err != nil {
		return fmt.Errorf("deliver match alert: %w", err)
	}

	s.log.Info("match alert delivered", "userId", payload.UserID, "matches", payload.MatchCount)
	return nil
}

// SubscribeWelcome sends a welcome email whenever an account is created.
func (s *Service) SubscribeWelcome(bus events.Bus) {
	bus.Subscribe(events.UserRegistered{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.UserRegistered)
		if !ok {
			return nil
		}
		if err := s.sender.SendWelcomeEmail(ctx, e.Email, e.Name, e.UserType); err != nil {
			s.log.Error("welcome email failed", "error", err, "userId", e.UserID)
		}
		return nil
	}))
}

// QueueNotifier implements the analysis pipeline's Notifier by
// enqueueing a task for deferred delivery. Enqueue failures surface to
// the pipeline, which logs and moves on.
type QueueNotifier struct {
	queue *scheduler.Client
}

func NewQueueNotifier(queue *scheduler.Client) *QueueNotifier {
	return &QueueNotifier{queue: queue}
}

func (n *QueueNotifier) NotifyMatches(ctx context.Context, userID string, matches []domain.BuyerMatch, price domain.PriceEstimate) error {
	if len(matches) == 0 {
		return nil
	}

	top := matches[0]
	return n.queue.EnqueueMatchAlert(ctx, scheduler.MatchAlertPayload{
		UserID:        userID,
		MatchCount:    len(matches),
		TopBuyerName:  top.Name,
		TopMatchScore: top.MatchScore,
		FairPrice:     price.FairPricePerKg,
		Currency:      price.Currency,
	})
}
