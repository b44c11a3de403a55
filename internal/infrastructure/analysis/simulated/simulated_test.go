package simulated

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

type stubIDs struct{ n int }

func (s *stubIDs) NewID() string {
	s.n++
	return "doc"
}

func (s *stubIDs) NextDeclarationNumber(time.Time) string { return "" }

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC) }

func TestDocumentAnalyzerConfidenceRange(t *testing.T) {
	a := NewDocumentAnalyzer(&stubIDs{}, stubClock{}, rand.New(rand.NewPCG(1, 2)))

	for i := 0; i < 2000; i++ {
		doc, err := a.Analyze(context.Background(), domain.FileDescriptor{Name: "scan.pdf"})
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if doc.Confidence < 0.95 || doc.Confidence >= 1 {
			t.Fatalf("confidence %v out of [0.95, 1)", doc.Confidence)
		}
	}
}

func TestDocumentAnalyzerExtractsByType(t *testing.T) {
	a := NewDocumentAnalyzer(&stubIDs{}, stubClock{}, nil)

	doc, err := a.Analyze(context.Background(), domain.FileDescriptor{Name: "Facture.pdf", SizeBytes: 2048, MimeType: "application/pdf"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	invoice, ok := doc.Extracted.(domain.InvoiceData)
	if !ok {
		t.Fatalf("expected invoice data, got %T", doc.Extracted)
	}
	if !invoice.TotalAmount.Equal(decimal.NewFromInt(2500000)) {
		t.Fatalf("unexpected invoice total %s", invoice.TotalAmount)
	}
	if doc.Status != domain.DocumentAnalyzed || doc.SizeBytes != 2048 || doc.MimeType != "application/pdf" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Extracted.DocumentType() != doc.Type {
		t.Fatalf("extraction type %s does not match document type %s", doc.Extracted.DocumentType(), doc.Type)
	}
}

func TestDocumentAnalyzerHonoursCancellation(t *testing.T) {
	a := NewDocumentAnalyzer(&stubIDs{}, stubClock{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Analyze(ctx, domain.FileDescriptor{Name: "a.pdf"}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestEligibilityAnalyzerDefaultProfile(t *testing.T) {
	a := NewEligibilityAnalyzer(DefaultEligibilityProfile(), stubClock{})

	got, err := a.Analyze(context.Background(), domain.NewDraft())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !got.Eligible || !got.Requirements.AllMet() {
		t.Fatalf("expected eligible with all requirements met, got %+v", got)
	}
	if !got.SavingsAmount.Equal(decimal.NewFromInt(500000)) {
		t.Fatalf("expected savings 500000, got %s", got.SavingsAmount)
	}
	if !got.SavingsPercent.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected 20 percent, got %s", got.SavingsPercent)
	}
}

func TestIneligibleProfileSavesNothing(t *testing.T) {
	profile := DefaultEligibilityProfile()
	profile.Eligible = false

	if !profile.Savings().IsZero() {
		t.Fatalf("expected zero savings, got %s", profile.Savings())
	}
}
