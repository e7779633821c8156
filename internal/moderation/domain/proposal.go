// Package domain holds the moderation entities: question proposals and
// question reports.
package domain

import (
	"errors"
	"strings"
	"time"
)

// ProposalStatus is the review state of a proposal.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalApproved ProposalStatus = "approved"
	ProposalRejected ProposalStatus = "rejected"
)

// ErrProposalDecided is returned when approving or rejecting a proposal
// that has already left the pending state.
var ErrProposalDecided = errors.New("proposal already decided")

// Proposal is a question suggested by a player, waiting for review.
type Proposal struct {
	ID          string
	Prompt      string
	Answer      string
	CategoryID  string
	SubmittedBy string
	Status      ProposalStatus
	ReviewedBy  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the proposal for persistence.
func (p *Proposal) Validate() error {
	if strings.TrimSpace(p.Prompt) == "" {
		return errors.New("prompt is required")
	}
	if strings.TrimSpace(p.Answer) == "" {
		return errors.New("answer is required")
	}
	if p.Status == "" {
		p.Status = ProposalPending
	}
	switch p.Status {
	case ProposalPending, ProposalApproved, ProposalRejected:
	default:
		return errors.New("status must be pending, approved, or rejected")
	}
	return nil
}

// Approve moves the proposal from pending to approved. Only pending
// proposals can be decided.
func (p *Proposal) Approve(reviewerID string) error {
	return p.decide(ProposalApproved, reviewerID)
}

// Reject moves the proposal from pending to rejected.
func (p *Proposal) Reject(reviewerID string) error {
	return p.decide(ProposalRejected, reviewerID)
}

func (p *Proposal) decide(status ProposalStatus, reviewerID string) error {
	if p.Status != ProposalPending {
		return ErrProposalDecided
	}
	p.Status = status
	p.ReviewedBy = reviewerID
	p.UpdatedAt = time.Now().UTC()
	return nil
}
