// Package credit implements the activity-based credit scoring
// heuristic and the loan and insurance products built on top of it.
package credit

import (
	"context"
	"fmt"

	"samakicash_backend/internal/analysis/domain"
)

const (
	baseScore      = 650
	perCatchBonus  = 10
	maxScore       = 850
	eligibleAbove  = 600
	loanPerPoint   = 1000
	premiumRate    = 0.05
	defaultPurpose = "fishing_equipment"
)

// CatchCounter reports how many catches a user has recorded.
type CatchCounter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}

// Service computes credit snapshots and loan/insurance decisions.
type Service struct {
	catches CatchCounter
}

func New(catches CatchCounter) *Service {
	return &Service{catches: catches}
}

// Score derives a credit snapshot from the user's catch history. More
// recorded activity means a higher score, capped at the ceiling.
func (s *Service) Score(ctx context.Context, userID string) (domain.CreditSnapshot, error) {
	count, err := s.catches.CountByUser(ctx, userID)
	if err != nil {
		return domain.CreditSnapshot{}, fmt.Errorf("credit score: %w", err)
	}

	score := baseScore + count*perCatchBonus
	if score > maxScore {
		score = maxScore
	}
	eligible := score > eligibleAbove

	var maxLoan float64
	if eligible {
		maxLoan = float64(score * loanPerPoint)
	}

	return domain.CreditSnapshot{
		UserID:        userID,
		CreditScore:   score,
		LoanEligible:  eligible,
		MaxLoanAmount: maxLoan,
		CatchCount:    count,
	}, nil
}

// LoanDecision is the outcome of a loan application.
type LoanDecision struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	UserID      string  `json:"user_id,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Purpose     string  `json:"purpose,omitempty"`
	CreditScore int     `json:"credit_score,omitempty"`
	MaxEligible float64 `json:"max_eligible,omitempty"`
}

// ApplyForLoan scores the user, then approves when the requested amount
// fits inside their eligibility.
func (s *Service) ApplyForLoan(ctx context.Context, userID string, amount float64, purpose string) (LoanDecision, error) {
	snapshot, err := s.Score(ctx, userID)
	if err != nil {
		return LoanDecision{}, err
	}

	if !snapshot.LoanEligible {
		return LoanDecision{
			Status:      "rejected",
			Message:     "Credit score too low for loan approval",
			CreditScore: snapshot.CreditScore,
		}, nil
	}
	if amount > snapshot.MaxLoanAmount {
		return LoanDecision{
			Status:      "rejected",
			Message:     "Loan amount exceeds maximum eligible amount",
			MaxEligible: snapshot.MaxLoanAmount,
		}, nil
	}

	if purpose == "" {
		purpose = defaultPurpose
	}
	return LoanDecision{
		Status:      "approved",
		Message:     "Loan application approved",
		UserID:      userID,
		Amount:      amount,
		Purpose:     purpose,
		CreditScore: snapshot.CreditScore,
	}, nil
}

// InsuranceQuote is a flat-rate annual premium quote.
type InsuranceQuote struct {
	UserID         string  `json:"user_id"`
	CoverageType   string  `json:"coverage_type"`
	CoverageAmount float64 `json:"coverage_amount"`
	AnnualPremium  float64 `json:"annual_premium"`
	Message        string  `json:"message"`
}

// QuoteInsurance prices coverage at a flat annual rate.
func (s *Service) QuoteInsurance(userID, coverageType string, coverageAmount float64) InsuranceQuote {
	return InsuranceQuote{
		UserID:         userID,
		CoverageType:   coverageType,
		CoverageAmount: coverageAmount,
		AnnualPremium:  coverageAmount * premiumRate,
		Message:        "Comprehensive coverage",
	}
}
