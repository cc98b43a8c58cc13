package job

import (
	"strings"

	"jobtrack/internal/domain"
)

// ClaimDecision is the tri-state answer to "does a claim accompany this
// closure?". Confirmation is rejected while undecided.
type ClaimDecision int

const (
	DecisionUndecided ClaimDecision = iota
	DecisionYes
	DecisionNo
)

func ParseClaimDecision(s string) ClaimDecision {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return DecisionYes
	case "no":
		return DecisionNo
	}
	return DecisionUndecided
}

// ClaimDraft is the short-lived state of the Close Call dialogue. It is
// distinct from the persisted job: abandoning it has no side effects, and it
// is committed atomically on confirm.
type ClaimDraft struct {
	Decision  ClaimDecision
	Principal string
	Details   string
	InvoiceNo string
}

func draftFromRequest(req CloseCallRequest) ClaimDraft {
	return ClaimDraft{
		Decision:  ParseClaimDecision(req.ClaimDecision),
		Principal: strings.TrimSpace(req.Principal),
		Details:   strings.TrimSpace(req.Details),
		InvoiceNo: strings.TrimSpace(req.InvoiceNo),
	}
}

// Confirm validates the dialogue and yields the claim to persist: nil when
// the decision was "no". No partial result is ever produced on error.
func (d ClaimDraft) Confirm() (*domain.Claim, error) {
	switch d.Decision {
	case DecisionUndecided:
		return nil, ErrClaimUndecided
	case DecisionNo:
		return nil, nil
	}

	if d.Principal == "" || d.Details == "" {
		return nil, ErrClaimIncomplete
	}

	return &domain.Claim{
		Principal: d.Principal,
		Details:   d.Details,
		InvoiceNo: d.InvoiceNo,
	}, nil
}
