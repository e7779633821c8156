package domain

import (
	"errors"
	"testing"
)

func TestProposalTransitions(t *testing.T) {
	p := &Proposal{Prompt: "p", Answer: "a"}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.Status != ProposalPending {
		t.Fatalf("Status = %q, want pending", p.Status)
	}

	if err := p.Approve("reviewer-1"); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if p.Status != ProposalApproved || p.ReviewedBy != "reviewer-1" {
		t.Errorf("after approve: %+v", p)
	}

	// A decided proposal cannot be decided again.
	if err := p.Reject("reviewer-2"); !errors.Is(err, ErrProposalDecided) {
		t.Errorf("Reject after approve: %v, want ErrProposalDecided", err)
	}
	if err := p.Approve("reviewer-2"); !errors.Is(err, ErrProposalDecided) {
		t.Errorf("second Approve: %v, want ErrProposalDecided", err)
	}
}

func TestProposalReject(t *testing.T) {
	p := &Proposal{Prompt: "p", Answer: "a", Status: ProposalPending}
	if err := p.Reject("reviewer-1"); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if p.Status != ProposalRejected {
		t.Errorf("Status = %q, want rejected", p.Status)
	}
}

func TestProposalValidate(t *testing.T) {
	if err := (&Proposal{Prompt: "", Answer: "a"}).Validate(); err == nil {
		t.Error("blank prompt should be rejected")
	}
	if err := (&Proposal{Prompt: "p", Answer: "a", Status: "weird"}).Validate(); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestReportResolve(t *testing.T) {
	r := &Report{QuestionID: "q-1", Reason: "answer is wrong"}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if r.Status != ReportOpen {
		t.Fatalf("Status = %q, want open", r.Status)
	}
	if err := r.Resolve("admin-1"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := r.Resolve("admin-2"); !errors.Is(err, ErrReportResolved) {
		t.Errorf("second Resolve: %v, want ErrReportResolved", err)
	}
	if r.ResolvedBy != "admin-1" {
		t.Errorf("ResolvedBy = %q, want admin-1", r.ResolvedBy)
	}
}

func TestReportValidate(t *testing.T) {
	if err := (&Report{QuestionID: "", Reason: "r"}).Validate(); err == nil {
		t.Error("blank question id should be rejected")
	}
	if err := (&Report{QuestionID: "q", Reason: " "}).Validate(); err == nil {
		t.Error("blank reason should be rejected")
	}
}
