package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/core/ports"
)

type IntakeConfig struct {
	DocumentBaseDelay time.Duration
	DocumentStepDelay time.Duration
	EligibilityDelay  time.Duration
	// DeclaredValue becomes the total value of submitted declarations.
	DeclaredValue decimal.Decimal
}

func DefaultIntakeConfig() IntakeConfig {
	return IntakeConfig{
		DocumentBaseDelay: 1000 * time.Millisecond,
		DocumentStepDelay: 500 * time.Millisecond,
		EligibilityDelay:  2000 * time.Millisecond,
		DeclaredValue:     decimal.NewFromInt(2_500_000),
	}
}

// DocumentDelay is the completion delay of the index-th file of one upload.
func (c IntakeConfig) DocumentDelay(index int) time.Duration {
	return c.DocumentBaseDelay + time.Duration(index)*c.DocumentStepDelay
}

type IntakeService struct {
	documents   ports.DocumentAnalyzer
	eligibility ports.EligibilityAnalyzer
	registry    ports.DeclarationRegistry
	ids         ports.IDGenerator
	clock       ports.Clock
	observer    ports.IntakeObserver
	cfg         IntakeConfig
}

func NewIntakeService(
	documents ports.DocumentAnalyzer,
	eligibility ports.EligibilityAnalyzer,
	registry ports.DeclarationRegistry,
	ids ports.IDGenerator,
	clock ports.Clock,
	observer ports.IntakeObserver,
	cfg IntakeConfig,
) *IntakeService {
	if clock == nil {
		clock = systemClock{}
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &IntakeService{
		documents:   documents,
		eligibility: eligibility,
		registry:    registry,
		ids:         ids,
		clock:       clock,
		observer:    observer,
		cfg:         cfg,
	}
}

// Open starts a session with a fresh draft. Cancelling ctx cancels the
// session's in-flight analyses; Close must still be called.
func (s *IntakeService) Open(ctx context.Context) (*IntakeSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	session := &IntakeSession{
		id:      s.ids.NewID(),
		svc:     s,
		ctx:     sessionCtx,
		cancel:  cancel,
		cmds:    make(chan func(*intakeState)),
		results: make(chan analysisResult),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go session.loop(&intakeState{
		step:  domain.StepInfo,
		draft: domain.NewDraft(),
	})

	s.observer.SessionOpened()
	slog.Info("intake_session_opened", "session_id", session.id)
	return session, nil
}

// IntakeSession is one run of the declaration wizard. All state lives on a
// single goroutine; methods send it commands and wait for the reply.
type IntakeSession struct {
	id  string
	svc *IntakeService

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group

	cmds    chan func(*intakeState)
	results chan analysisResult
	stop    chan struct{}
	done    chan struct{}

	closeOnce sync.Once
}

var _ ports.IntakeWizard = (*IntakeSession)(nil)

type intakeState struct {
	step   domain.Step
	draft  domain.DeclarationDraft
	closed bool

	// generation identifies the eligibility analysis allowed to land.
	generation          uint64
	eligibilityInFlight bool

	pending int
	waiters []chan struct{}
}

type analysisResult struct {
	kind        ports.AnalysisKind
	generation  uint64
	document    domain.Document
	eligibility domain.EligibilityAnalysis
	err         error
	// cancelled results only release their pending slot.
	cancelled bool
}

func (s *IntakeSession) ID() string {
	return s.id
}

func (s *IntakeSession) CurrentStep(ctx context.Context) (domain.Step, error) {
	var step domain.Step
	err := s.call(ctx, "current step", func(st *intakeState) error {
		step = st.step
		return nil
	})
	return step, err
}

func (s *IntakeSession) Phase(ctx context.Context) (domain.AnalysisPhase, error) {
	var phase domain.AnalysisPhase
	err := s.call(ctx, "analysis phase", func(st *intakeState) error {
		phase = st.phase()
		return nil
	})
	return phase, err
}

// Draft returns a deep copy of the draft.
func (s *IntakeSession) Draft(ctx context.Context) (domain.DeclarationDraft, error) {
	var draft domain.DeclarationDraft
	err := s.call(ctx, "read draft", func(st *intakeState) error {
		draft = st.draft.Clone()
		return nil
	})
	return draft, err
}

func (s *IntakeSession) Advance(ctx context.Context) error {
	const op = "advance step"
	return s.call(ctx, op, func(st *intakeState) error {
		next, ok := st.step.Next()
		if !ok {
			return domain.WrapError(domain.ErrInvalidTransition, op, fmt.Errorf("no step after %s", st.step))
		}
		if st.step == domain.StepDocuments && st.draft.UsableDocuments() == 0 {
			return domain.WrapError(domain.ErrInvalidTransition, op, errors.New("no analyzed document yet"))
		}
		slog.Debug("intake_step_changed", "session_id", s.id, "from", st.step.String(), "to", next.String())
		st.step = next
		return nil
	})
}

// GoBack moves one step back. It is a no-op on the first step.
func (s *IntakeSession) GoBack(ctx context.Context) error {
	return s.call(ctx, "go back", func(st *intakeState) error {
		if prev, ok := st.step.Previous(); ok {
			slog.Debug("intake_step_changed", "session_id", s.id, "from", st.step.String(), "to", prev.String())
			st.step = prev
		}
		return nil
	})
}

func (s *IntakeSession) UpdateField(ctx context.Context, field domain.DraftField, value string) error {
	const op = "update field"
	return s.call(ctx, op, func(st *intakeState) error {
		if st.step != domain.StepInfo {
			return domain.WrapError(domain.ErrInvalidTransition, op, fmt.Errorf("fields are editable on the info step, current step is %s", st.step))
		}
		return st.draft.Set(field, value)
	})
}

func (s *IntakeSession) AddDocument(ctx context.Context, file domain.FileDescriptor) error {
	return s.AddDocuments(ctx, file)
}

// AddDocuments schedules one analysis per file. The i-th file of the call
// completes after IntakeConfig.DocumentDelay(i). Any eligibility analysis of
// the draft is discarded.
func (s *IntakeSession) AddDocuments(ctx context.Context, files ...domain.FileDescriptor) error {
	const op = "add documents"
	if len(files) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, op, errors.New("no files given"))
	}
	for _, file := range files {
		if strings.TrimSpace(file.Name) == "" {
			return domain.WrapError(domain.ErrInvalidInput, op, errors.New("file name is empty"))
		}
	}

	return s.call(ctx, op, func(st *intakeState) error {
		if st.step != domain.StepDocuments {
			return domain.WrapError(domain.ErrInvalidTransition, op, fmt.Errorf("documents are added on the documents step, current step is %s", st.step))
		}
		s.invalidateEligibility(st)
		for i, file := range files {
			st.pending++
			s.group.Go(s.documentTask(file, s.svc.cfg.DocumentDelay(i)))
		}
		return nil
	})
}

// RunEligibilityAnalysis schedules an analysis of the current draft. A later
// call supersedes an earlier one still in flight.
func (s *IntakeSession) RunEligibilityAnalysis(ctx context.Context) error {
	const op = "run eligibility analysis"
	return s.call(ctx, op, func(st *intakeState) error {
		if st.step != domain.StepEligibility {
			return domain.WrapError(domain.ErrInvalidTransition, op, fmt.Errorf("analysis runs on the eligibility step, current step is %s", st.step))
		}
		if st.draft.UsableDocuments() == 0 {
			return domain.WrapError(domain.ErrInvalidTransition, op, errors.New("no analyzed document"))
		}
		st.generation++
		st.draft.Eligibility = nil
		st.eligibilityInFlight = true
		st.pending++
		s.group.Go(s.eligibilityTask(st.generation, st.draft.Clone()))
		return nil
	})
}

// Wait blocks until no analysis is in flight.
func (s *IntakeSession) Wait(ctx context.Context) error {
	const op = "wait for analyses"
	var idle chan struct{}
	err := s.call(ctx, op, func(st *intakeState) error {
		if st.pending == 0 {
			return nil
		}
		idle = make(chan struct{})
		st.waiters = append(st.waiters, idle)
		return nil
	})
	if err != nil || idle == nil {
		return err
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return closedError(op)
	}
}

// Submit freezes the draft into a declaration and ends the session.
func (s *IntakeSession) Submit(ctx context.Context) (domain.Declaration, error) {
	const op = "submit declaration"
	var decl domain.Declaration
	err := s.call(ctx, op, func(st *intakeState) error {
		if st.step != domain.StepEligibility || st.draft.Eligibility == nil {
			return domain.WrapError(domain.ErrInvalidTransition, op, errors.New("eligibility analysis not completed"))
		}
		now := s.svc.clock.Now()
		finalized, err := domain.FinalizeDeclaration(
			st.draft,
			s.svc.ids.NewID(),
			s.svc.ids.NextDeclarationNumber(now),
			s.svc.cfg.DeclaredValue,
			now,
		)
		if err != nil {
			return err
		}
		if err := s.svc.registry.Save(ctx, finalized); err != nil {
			return fmt.Errorf("record declaration: %w", err)
		}
		st.closed = true
		decl = finalized
		return nil
	})
	if err != nil {
		return domain.Declaration{}, err
	}

	s.svc.observer.DeclarationSubmitted(decl)
	slog.Info("declaration_submitted",
		"session_id", s.id,
		"declaration_id", decl.ID,
		"number", decl.Number,
		"documents", len(decl.Documents),
		"savings", decl.PreferentialSavings.String(),
	)
	s.Close()
	return decl.Clone(), nil
}

// Close abandons the session and waits for in-flight analyses to stop.
func (s *IntakeSession) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.stop)
		<-s.done
		_ = s.group.Wait()
		slog.Debug("intake_session_closed", "session_id", s.id)
	})
}

func (s *IntakeSession) call(ctx context.Context, op string, fn func(*intakeState) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	reply := make(chan error, 1)
	cmd := func(st *intakeState) {
		if st.closed {
			reply <- closedError(op)
			return
		}
		reply <- fn(st)
	}

	select {
	case s.cmds <- cmd:
		return <-reply
	case <-s.done:
		return closedError(op)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func closedError(op string) error {
	return domain.WrapError(domain.ErrInvalidTransition, op, domain.ErrSessionClosed)
}

func (s *IntakeSession) loop(st *intakeState) {
	defer close(s.done)
	for {
		select {
		case cmd := <-s.cmds:
			cmd(st)
		case res := <-s.results:
			s.apply(st, res)
		case <-s.stop:
			return
		}
	}
}

func (s *IntakeSession) apply(st *intakeState, res analysisResult) {
	st.pending--
	defer st.notifyIdle()
	if st.closed {
		return
	}
	if res.cancelled {
		if res.kind == ports.AnalysisEligibility && res.generation == st.generation {
			st.eligibilityInFlight = false
		}
		return
	}

	switch res.kind {
	case ports.AnalysisDocument:
		st.draft.Documents = append(st.draft.Documents, res.document)
		s.svc.observer.DocumentAnalyzed(res.document)
		slog.Info("document_analyzed",
			"session_id", s.id,
			"document_id", res.document.ID,
			"type", string(res.document.Type),
			"status", string(res.document.Status),
			"confidence", res.document.Confidence,
		)
	case ports.AnalysisEligibility:
		if res.generation != st.generation {
			slog.Debug("eligibility_result_discarded", "session_id", s.id, "generation", res.generation, "current", st.generation)
			return
		}
		st.eligibilityInFlight = false
		if res.err != nil {
			slog.Warn("eligibility_analysis_failed", "session_id", s.id, "error", res.err)
			return
		}
		analysis := res.eligibility
		st.draft.Eligibility = &analysis
		slog.Info("eligibility_analysis_completed",
			"session_id", s.id,
			"eligible", analysis.Eligible,
			"savings", analysis.SavingsAmount.String(),
		)
	}
}

func (s *IntakeSession) invalidateEligibility(st *intakeState) {
	if st.draft.Eligibility != nil || st.eligibilityInFlight {
		slog.Info("eligibility_analysis_invalidated", "session_id", s.id)
	}
	st.generation++
	st.eligibilityInFlight = false
	st.draft.Eligibility = nil
}

func (s *IntakeSession) documentTask(file domain.FileDescriptor, delay time.Duration) func() error {
	return func() error {
		started := s.svc.clock.Now()
		s.svc.observer.AnalysisStarted(ports.AnalysisDocument)
		defer func() {
			s.svc.observer.AnalysisFinished(ports.AnalysisDocument, s.svc.clock.Now().Sub(started))
		}()

		if !sleepContext(s.ctx, delay) {
			s.post(analysisResult{kind: ports.AnalysisDocument, cancelled: true})
			return nil
		}
		doc, err := s.svc.documents.Analyze(s.ctx, file)
		if err != nil {
			if s.ctx.Err() != nil {
				s.post(analysisResult{kind: ports.AnalysisDocument, cancelled: true})
				return nil
			}
			slog.Warn("document_analysis_failed", "session_id", s.id, "file", file.Name, "error", err)
			doc = s.failedDocument(file, err)
		}
		s.post(analysisResult{kind: ports.AnalysisDocument, document: doc})
		return nil
	}
}

func (s *IntakeSession) eligibilityTask(generation uint64, draft domain.DeclarationDraft) func() error {
	return func() error {
		started := s.svc.clock.Now()
		s.svc.observer.AnalysisStarted(ports.AnalysisEligibility)
		defer func() {
			s.svc.observer.AnalysisFinished(ports.AnalysisEligibility, s.svc.clock.Now().Sub(started))
		}()

		if !sleepContext(s.ctx, s.svc.cfg.EligibilityDelay) {
			s.post(analysisResult{kind: ports.AnalysisEligibility, generation: generation, cancelled: true})
			return nil
		}
		analysis, err := s.svc.eligibility.Analyze(s.ctx, draft)
		s.post(analysisResult{
			kind:        ports.AnalysisEligibility,
			generation:  generation,
			eligibility: analysis,
			err:         err,
			cancelled:   err != nil && s.ctx.Err() != nil,
		})
		return nil
	}
}

// failedDocument stands in for an upload whose analysis failed, so the
// draft keeps one document per uploaded file.
func (s *IntakeSession) failedDocument(file domain.FileDescriptor, cause error) domain.Document {
	return domain.Document{
		ID:         s.svc.ids.NewID(),
		Name:       file.Name,
		Type:       domain.ClassifyFilename(file.Name),
		Status:     domain.DocumentError,
		Alerts:     []string{fmt.Sprintf("analysis failed: %v", cause)},
		SizeBytes:  file.SizeBytes,
		MimeType:   file.MimeType,
		AnalyzedAt: s.svc.clock.Now(),
	}
}

// post hands a result to the session goroutine. It gives up once the
// session stops so tasks never block Close.
func (s *IntakeSession) post(res analysisResult) {
	select {
	case s.results <- res:
	case <-s.stop:
	}
}

func (st *intakeState) phase() domain.AnalysisPhase {
	switch {
	case st.draft.Eligibility != nil:
		return domain.PhaseAnalysisReady
	case st.eligibilityInFlight:
		return domain.PhaseAnalysisPending
	default:
		return domain.PhaseDraftIncomplete
	}
}

func (st *intakeState) notifyIdle() {
	if st.pending > 0 {
		return
	}
	for _, ch := range st.waiters {
		close(ch)
	}
	st.waiters = nil
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

type nopObserver struct{}

func (nopObserver) SessionOpened() {}
func (nopObserver) AnalysisStarted(ports.AnalysisKind) {}
func (nopObserver) AnalysisFinished(ports.AnalysisKind, time.Duration) {}
func (nopObserver) DocumentAnalyzed(domain.Document) {}
func (nopObserver) DeclarationSubmitted(domain.Declaration) {}
