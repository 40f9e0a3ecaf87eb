package credit

import (
	"context"
	"errors"
	"testing"
)

type fakeCounter struct {
	count int
	err   error
}

func (f *fakeCounter) CountByUser(ctx context.Context, userID string) (int, error) {
	return f.count, f.err
}

func TestScoreFromCatchHistory(t *testing.T) {
	cases := []struct {
		catches   int
		wantScore int
		wantLoan  float64
	}{
		{0, 650, 650000},
		{5, 700, 700000},
		{20, 850, 850000},
		{50, 850, 850000},
	}

	for _, tc := range cases {
		svc := New(&fakeCounter{count: tc.catches})
		snapshot, err := svc.Score(context.Background(), "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snapshot.CreditScore != tc.wantScore {
			t.Errorf("catches=%d: score = %d, want %d", tc.catches, snapshot.CreditScore, tc.wantScore)
		}
		if !snapshot.LoanEligible {
			t.Errorf("catches=%d: expected loan eligibility", tc.catches)
		}
		if snapshot.MaxLoanAmount != tc.wantLoan {
			t.Errorf("catches=%d: max loan = %v, want %v", tc.catches, snapshot.MaxLoanAmount, tc.wantLoan)
		}
		if snapshot.CatchCount != tc.catches {
			t.Errorf("catches=%d: catch count = %d", tc.catches, snapshot.CatchCount)
		}
	}
}

func TestScorePropagatesStoreError(t *testing.T) {
	svc := New(&fakeCounter{err: errors.New("db down")})

	if _, err := svc.Score(context.Background(), "u1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestApplyForLoanApproved(t *testing.T) {
	svc := New(&fakeCounter{count: 10})

	decision, err := svc.ApplyForLoan(context.Background(), "u1", 500000, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Status != "approved" {
		t.Fatalf("expected approval, got %q (%s)", decision.Status, decision.Message)
	}
	if decision.Purpose != "fishing_equipment" {
		t.Fatalf("expected default purpose, got %q", decision.Purpose)
	}
	if decision.CreditScore != 750 {
		t.Fatalf("unexpected credit score %d", decision.CreditScore)
	}
}

func TestApplyForLoanRejectedOverMax(t *testing.T) {
	svc := New(&fakeCounter{count: 0})

	decision, err := svc.ApplyForLoan(context.Background(), "u1", 2000000, "boat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Status != "rejected" {
		t.Fatalf("expected rejection, got %q", decision.Status)
	}
	if decision.MaxEligible != 650000 {
		t.Fatalf("unexpected max eligible %v", decision.MaxEligible)
	}
}

func TestQuoteInsurancePremium(t *testing.T) {
	svc := New(&fakeCounter{})

	quote := svc.QuoteInsurance("u1", "equipment", 1000000)
	if quote.AnnualPremium != 50000 {
		t.Fatalf("expected premium 50000, got %v", quote.AnnualPremium)
	}
	if quote.CoverageType != "equipment" {
		t.Fatalf("unexpected coverage type %q", quote.CoverageType)
	}
}
