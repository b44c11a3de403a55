package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/goleak"

	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/core/ports"
)

type fakeDocumentAnalyzer struct {
	mu    sync.Mutex
	calls int
	fail  map[string]error
}

func (f *fakeDocumentAnalyzer) Analyze(_ context.Context, file domain.FileDescriptor) (domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.fail[file.Name]; err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		ID:         fmt.Sprintf("doc-%d", f.calls),
		Name:       file.Name,
		Type:       domain.ClassifyFilename(file.Name),
		Status:     domain.DocumentAnalyzed,
		Confidence: 0.95 + float64(f.calls%50)/1000,
		Alerts:     []string{},
	}, nil
}

type fakeEligibilityAnalyzer struct {
	mu      sync.Mutex
	calls   int
	gates   map[int]chan struct{}
	entered chan int
	err     error
}

func (f *fakeEligibilityAnalyzer) Analyze(ctx context.Context, _ domain.DeclarationDraft) (domain.EligibilityAnalysis, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	gate := f.gates[call]
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- call
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.EligibilityAnalysis{}, ctx.Err()
		}
	}
	if f.err != nil {
		return domain.EligibilityAnalysis{}, f.err
	}
	return domain.EligibilityAnalysis{
		Eligible:               true,
		SavingsAmount:          decimal.NewFromInt(int64(call) * 500000),
		SavingsPercent:         decimal.NewFromInt(20),
		NormalTariffRate:       decimal.NewFromInt(20),
		PreferentialTariffRate: decimal.Zero,
		Requirements: domain.EligibilityRequirements{
			CertificateOfOrigin:       true,
			RegionalContent:           true,
			SubstantialTransformation: true,
		},
	}, nil
}

type fakeRegistry struct {
	mu    sync.Mutex
	saved []domain.Declaration
}

func (f *fakeRegistry) Save(_ context.Context, decl domain.Declaration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, decl)
	return nil
}

func (f *fakeRegistry) Get(_ context.Context, id string) (domain.Declaration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, decl := range f.saved {
		if decl.ID == id {
			return decl, nil
		}
	}
	return domain.Declaration{}, domain.ErrNotFound
}

func (f *fakeRegistry) List(context.Context) ([]domain.Declaration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Declaration(nil), f.saved...), nil
}

type fakeIDs struct {
	mu  sync.Mutex
	ids int
	seq int
}

func (f *fakeIDs) NewID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids++
	return fmt.Sprintf("id-%d", f.ids)
}

func (f *fakeIDs) NextDeclarationNumber(at time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("DI%d%06d", at.Year(), 1246+f.seq)
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type countingObserver struct {
	mu        sync.Mutex
	opened    int
	started   map[ports.AnalysisKind]int
	finished  map[ports.AnalysisKind]int
	analyzed  int
	submitted int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		started:  map[ports.AnalysisKind]int{},
		finished: map[ports.AnalysisKind]int{},
	}
}

func (o *countingObserver) SessionOpened() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened++
}

func (o *countingObserver) AnalysisStarted(kind ports.AnalysisKind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started[kind]++
}

func (o *countingObserver) AnalysisFinished(kind ports.AnalysisKind, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished[kind]++
}

func (o *countingObserver) DocumentAnalyzed(domain.Document) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.analyzed++
}

func (o *countingObserver) DeclarationSubmitted(domain.Declaration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.submitted++
}

type intakeFixture struct {
	documents   *fakeDocumentAnalyzer
	eligibility *fakeEligibilityAnalyzer
	registry    *fakeRegistry
	observer    *countingObserver
	clock       fixedClock
	service     *IntakeService
}

func newIntakeFixture(cfg IntakeConfig) *intakeFixture {
	f := &intakeFixture{
		documents:   &fakeDocumentAnalyzer{fail: map[string]error{}},
		eligibility: &fakeEligibilityAnalyzer{gates: map[int]chan struct{}{}},
		registry:    &fakeRegistry{},
		observer:    newCountingObserver(),
		clock:       fixedClock{at: time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)},
	}
	f.service = NewIntakeService(f.documents, f.eligibility, f.registry, &fakeIDs{}, f.clock, f.observer, cfg)
	return f
}

func fastIntakeConfig() IntakeConfig {
	return IntakeConfig{
		DocumentBaseDelay: time.Millisecond,
		DocumentStepDelay: time.Millisecond,
		EligibilityDelay:  time.Millisecond,
		DeclaredValue:     decimal.NewFromInt(2500000),
	}
}

func waitIdle(t *testing.T, s *IntakeSession) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func openAtDocuments(t *testing.T, f *intakeFixture) *IntakeSession {
	t.Helper()
	ctx := context.Background()
	s, err := f.service.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(s.Close)
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance() to documents error = %v", err)
	}
	return s
}

func openReadyForSubmit(t *testing.T, f *intakeFixture) *IntakeSession {
	t.Helper()
	ctx := context.Background()
	s := openAtDocuments(t, f)
	if err := s.AddDocuments(ctx, domain.FileDescriptor{Name: "facture.pdf"}, domain.FileDescriptor{Name: "certificat.pdf"}); err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}
	waitIdle(t, s)
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance() to eligibility error = %v", err)
	}
	if err := s.RunEligibilityAnalysis(ctx); err != nil {
		t.Fatalf("RunEligibilityAnalysis() error = %v", err)
	}
	waitIdle(t, s)
	return s
}

func TestIntakeSessionStartsOnInfoWithDefaults(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()

	s, err := f.service.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	step, err := s.CurrentStep(ctx)
	if err != nil || step != domain.StepInfo {
		t.Fatalf("expected info step, got %s (err=%v)", step, err)
	}
	phase, err := s.Phase(ctx)
	if err != nil || phase != domain.PhaseDraftIncomplete {
		t.Fatalf("expected draft-incomplete, got %s (err=%v)", phase, err)
	}
	draft, err := s.Draft(ctx)
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if diff := cmp.Diff(domain.NewDraft(), draft); diff != "" {
		t.Fatalf("unexpected initial draft (-want +got):\n%s", diff)
	}
	if f.observer.opened != 1 {
		t.Fatalf("expected one opened session, got %d", f.observer.opened)
	}
}

func TestAdvanceWithoutDocumentsNeverUnlocksEligibility(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()
	s := openAtDocuments(t, f)

	err := s.Advance(ctx)
	if !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	step, _ := s.CurrentStep(ctx)
	if step != domain.StepDocuments {
		t.Fatalf("expected to stay on documents, got %s", step)
	}
	if err := s.RunEligibilityAnalysis(ctx); !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from analysis, got %v", err)
	}
	s.Close()
}

func TestAdvancePastEligibilityFails(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	s := openReadyForSubmit(t, f)

	if err := s.Advance(context.Background()); !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	s.Close()
}

func TestGoBackIsNoOpOnInfo(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()
	s, _ := f.service.Open(ctx)
	defer s.Close()

	if err := s.GoBack(ctx); err != nil {
		t.Fatalf("GoBack() error = %v", err)
	}
	step, _ := s.CurrentStep(ctx)
	if step != domain.StepInfo {
		t.Fatalf("expected info, got %s", step)
	}
}

func TestUpdateFieldOnlyOnInfo(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()
	s, _ := f.service.Open(ctx)
	defer s.Close()

	if err := s.UpdateField(ctx, domain.FieldImporter, "SIFCA GROUP"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	if err := s.UpdateField(ctx, domain.DraftField("weight"), "1t"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if err := s.UpdateField(ctx, domain.FieldRegime, domain.RegimeTemporaryImport); !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	draft, _ := s.Draft(ctx)
	if draft.Importer != "SIFCA GROUP" {
		t.Fatalf("expected updated importer, got %q", draft.Importer)
	}
	if draft.Regime != domain.RegimeDefinitiveImport {
		t.Fatalf("expected regime unchanged, got %q", draft.Regime)
	}
}

func TestAddDocumentsOutsideDocumentsStepFails(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()
	s, _ := f.service.Open(ctx)
	defer s.Close()

	err := s.AddDocument(ctx, domain.FileDescriptor{Name: "facture.pdf"})
	if !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := s.AddDocuments(ctx); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty upload, got %v", err)
	}
}

func TestConcurrentUploadsYieldOneDocumentPerFile(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()
	s := openAtDocuments(t, f)

	const uploads = 12
	var wg sync.WaitGroup
	errs := make(chan error, uploads)
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.AddDocument(ctx, domain.FileDescriptor{Name: fmt.Sprintf("scan-%02d.pdf", i)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("AddDocument() error = %v", err)
		}
	}
	waitIdle(t, s)

	draft, err := s.Draft(ctx)
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if len(draft.Documents) != uploads {
		t.Fatalf("expected %d documents, got %d", uploads, len(draft.Documents))
	}
	seen := map[string]bool{}
	for _, doc := range draft.Documents {
		if doc.Confidence < 0.95 || doc.Confidence >= 1 {
			t.Fatalf("confidence %v out of [0.95, 1)", doc.Confidence)
		}
		if doc.Type != domain.DocumentPackingList {
			t.Fatalf("expected packing list for %s, got %s", doc.Name, doc.Type)
		}
		seen[doc.Name] = true
	}
	if len(seen) != uploads {
		t.Fatalf("expected %d distinct files, got %d", uploads, len(seen))
	}
	if f.observer.analyzed != uploads {
		t.Fatalf("expected %d analyzed events, got %d", uploads, f.observer.analyzed)
	}
	s.Close()
}

func TestDocumentTypesFollowFileNames(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()
	s := openAtDocuments(t, f)

	files := []domain.FileDescriptor{
		{Name: "Facture_OLAM.pdf"},
		{Name: "Connaissement.pdf"},
		{Name: "Certificat_Origine.pdf"},
		{Name: "colisage.xlsx"},
	}
	if err := s.AddDocuments(ctx, files...); err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}
	waitIdle(t, s)

	draft, _ := s.Draft(ctx)
	got := map[string]domain.DocumentType{}
	for _, doc := range draft.Documents {
		got[doc.Name] = doc.Type
	}
	want := map[string]domain.DocumentType{
		"Facture_OLAM.pdf":       domain.DocumentInvoice,
		"Connaissement.pdf":      domain.DocumentBillOfLading,
		"Certificat_Origine.pdf": domain.DocumentCertificateOfOrigin,
		"colisage.xlsx":          domain.DocumentPackingList,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected document types (-want +got):\n%s", diff)
	}
	s.Close()
}

func TestFailedDocumentAnalysisKeepsUploadCount(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	f.documents.fail["broken.pdf"] = domain.WrapError(domain.ErrTemporary, "analyze document", errors.New("scanner offline"))
	ctx := context.Background()
	s := openAtDocuments(t, f)

	if err := s.AddDocument(ctx, domain.FileDescriptor{Name: "broken.pdf", SizeBytes: 42}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	waitIdle(t, s)

	draft, _ := s.Draft(ctx)
	if len(draft.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(draft.Documents))
	}
	doc := draft.Documents[0]
	if doc.Status != domain.DocumentError {
		t.Fatalf("expected error status, got %s", doc.Status)
	}
	if len(doc.Alerts) != 1 || !strings.Contains(doc.Alerts[0], "scanner offline") {
		t.Fatalf("expected failure alert, got %v", doc.Alerts)
	}
	if doc.SizeBytes != 42 {
		t.Fatalf("expected size carried over, got %d", doc.SizeBytes)
	}
	if err := s.Advance(ctx); !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected failed documents not to unlock eligibility, got %v", err)
	}
	s.Close()
}

func TestSubmitRequiresCompletedAnalysis(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	gate := make(chan struct{})
	f.eligibility.gates[1] = gate
	f.eligibility.entered = make(chan int, 1)
	ctx := context.Background()

	s := openAtDocuments(t, f)
	if err := s.AddDocument(ctx, domain.FileDescriptor{Name: "facture.pdf"}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	waitIdle(t, s)
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	if _, err := s.Submit(ctx); !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition before analysis, got %v", err)
	}
	if err := s.RunEligibilityAnalysis(ctx); err != nil {
		t.Fatalf("RunEligibilityAnalysis() error = %v", err)
	}
	<-f.eligibility.entered

	phase, _ := s.Phase(ctx)
	if phase != domain.PhaseAnalysisPending {
		t.Fatalf("expected analysis-pending, got %s", phase)
	}
	if _, err := s.Submit(ctx); !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition while analysis runs, got %v", err)
	}

	close(gate)
	waitIdle(t, s)

	phase, _ = s.Phase(ctx)
	if phase != domain.PhaseAnalysisReady {
		t.Fatalf("expected analysis-ready, got %s", phase)
	}
	draft, _ := s.Draft(ctx)

	decl, err := s.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !decl.PreferentialSavings.Equal(draft.Eligibility.SavingsAmount) {
		t.Fatalf("expected savings %s, got %s", draft.Eligibility.SavingsAmount, decl.PreferentialSavings)
	}

	_, err = s.Submit(ctx)
	if !domain.IsKind(err, domain.ErrInvalidTransition) || !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected closed-session transition error, got %v", err)
	}
	if len(f.registry.saved) != 1 {
		t.Fatalf("expected exactly one recorded declaration, got %d", len(f.registry.saved))
	}
}

func TestSubmitFreezesDraftIntoDeclaration(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()
	s := openReadyForSubmit(t, f)

	decl, err := s.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if decl.Number != "DI2025001247" {
		t.Fatalf("expected DI2025001247, got %s", decl.Number)
	}
	if decl.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !decl.CreatedAt.Equal(f.clock.at) || !decl.UpdatedAt.Equal(decl.CreatedAt) {
		t.Fatalf("expected equal timestamps at %s, got %s / %s", f.clock.at, decl.CreatedAt, decl.UpdatedAt)
	}
	if !decl.TotalValue.Equal(decimal.NewFromInt(2500000)) {
		t.Fatalf("expected total value 2500000, got %s", decl.TotalValue)
	}
	if len(decl.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(decl.Documents))
	}
	if f.observer.submitted != 1 {
		t.Fatalf("expected one submitted event, got %d", f.observer.submitted)
	}

	if _, err := s.CurrentStep(ctx); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed after submit, got %v", err)
	}
}

func TestSecondEligibilityRunSupersedesFirst(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	firstGate := make(chan struct{})
	f.eligibility.gates[1] = firstGate
	f.eligibility.entered = make(chan int, 2)
	ctx := context.Background()

	s := openAtDocuments(t, f)
	if err := s.AddDocument(ctx, domain.FileDescriptor{Name: "facture.pdf"}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	waitIdle(t, s)
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	if err := s.RunEligibilityAnalysis(ctx); err != nil {
		t.Fatalf("first RunEligibilityAnalysis() error = %v", err)
	}
	<-f.eligibility.entered
	if err := s.RunEligibilityAnalysis(ctx); err != nil {
		t.Fatalf("second RunEligibilityAnalysis() error = %v", err)
	}
	<-f.eligibility.entered
	close(firstGate)
	waitIdle(t, s)

	draft, _ := s.Draft(ctx)
	if draft.Eligibility == nil {
		t.Fatalf("expected an analysis")
	}
	want := decimal.NewFromInt(1000000)
	if !draft.Eligibility.SavingsAmount.Equal(want) {
		t.Fatalf("expected the second run's savings %s, got %s", want, draft.Eligibility.SavingsAmount)
	}
	s.Close()
}

func TestAddingDocumentDiscardsEligibility(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	ctx := context.Background()
	s := openReadyForSubmit(t, f)

	if err := s.GoBack(ctx); err != nil {
		t.Fatalf("GoBack() error = %v", err)
	}
	if err := s.AddDocument(ctx, domain.FileDescriptor{Name: "connaissement.pdf"}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	phase, _ := s.Phase(ctx)
	if phase != domain.PhaseDraftIncomplete {
		t.Fatalf("expected draft-incomplete after upload, got %s", phase)
	}
	waitIdle(t, s)
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if _, err := s.Submit(ctx); !domain.IsKind(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition without a fresh analysis, got %v", err)
	}
	s.Close()
}

func TestFailedEligibilityAnalysisLeavesDraftIncomplete(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newIntakeFixture(fastIntakeConfig())
	f.eligibility.err = errors.New("tariff table unavailable")
	ctx := context.Background()

	s := openAtDocuments(t, f)
	if err := s.AddDocument(ctx, domain.FileDescriptor{Name: "facture.pdf"}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	waitIdle(t, s)
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if err := s.RunEligibilityAnalysis(ctx); err != nil {
		t.Fatalf("RunEligibilityAnalysis() error = %v", err)
	}
	waitIdle(t, s)

	phase, _ := s.Phase(ctx)
	if phase != domain.PhaseDraftIncomplete {
		t.Fatalf("expected draft-incomplete, got %s", phase)
	}
	s.Close()
}

func TestCloseCancelsInFlightAnalyses(t *testing.T) {
	defer goleak.VerifyNone(t)
	cfg := fastIntakeConfig()
	cfg.DocumentBaseDelay = time.Hour
	f := newIntakeFixture(cfg)
	ctx := context.Background()

	s := openAtDocuments(t, f)
	if err := s.AddDocuments(ctx, domain.FileDescriptor{Name: "a.pdf"}, domain.FileDescriptor{Name: "b.pdf"}); err != nil {
		t.Fatalf("AddDocuments() error = %v", err)
	}
	s.Close()
	s.Close()

	if f.documents.calls != 0 {
		t.Fatalf("expected no analyzer calls, got %d", f.documents.calls)
	}
	err := s.AddDocument(ctx, domain.FileDescriptor{Name: "c.pdf"})
	if !domain.IsKind(err, domain.ErrInvalidTransition) || !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected closed-session error, got %v", err)
	}
	if err := s.Wait(ctx); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected Wait to report closed session, got %v", err)
	}

	f.observer.mu.Lock()
	defer f.observer.mu.Unlock()
	if f.observer.started[ports.AnalysisDocument] != f.observer.finished[ports.AnalysisDocument] {
		t.Fatalf("in-flight bookkeeping unbalanced: %v started, %v finished", f.observer.started, f.observer.finished)
	}
}

func TestCancelledOpenContextReleasesWaiters(t *testing.T) {
	defer goleak.VerifyNone(t)
	cfg := fastIntakeConfig()
	cfg.DocumentBaseDelay = time.Hour
	f := newIntakeFixture(cfg)

	openCtx, cancel := context.WithCancel(context.Background())
	s, err := f.service.Open(openCtx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()
	ctx := context.Background()
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if err := s.AddDocument(ctx, domain.FileDescriptor{Name: "a.pdf"}); err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	cancel()
	waitIdle(t, s)

	draft, _ := s.Draft(ctx)
	if len(draft.Documents) != 0 {
		t.Fatalf("expected cancelled analysis to add nothing, got %d documents", len(draft.Documents))
	}
}

func TestDocumentDelayGrowsWithIndex(t *testing.T) {
	cfg := DefaultIntakeConfig()
	if got := cfg.DocumentDelay(0); got != time.Second {
		t.Fatalf("expected 1s, got %s", got)
	}
	if got := cfg.DocumentDelay(2); got != 2*time.Second {
		t.Fatalf("expected 2s, got %s", got)
	}
}
