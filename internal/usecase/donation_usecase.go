package usecase

import (
	"fmt"
	"sync"
	"time"

	"sparkz/internal/entity"
	"sparkz/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrFlowNotFound     = fmt.Errorf("donation flow not found")
	ErrInvalidAmount    = fmt.Errorf("donation amount must be greater than zero")
	ErrAlreadyConfirmed = fmt.Errorf("donation flow already confirmed")
	ErrCancelDenied     = fmt.Errorf("donation flow can only be cancelled before confirmation")
)

// DefaultDonorName is used when no donor name is supplied.
const DefaultDonorName = "Anónimo"

// closedFlowRetention is how long a closed flow stays observable for state
// polling before it is evicted.
const closedFlowRetention = time.Minute

// Scheduler abstracts the timer transitions so tests can drive the state
// machine deterministically instead of sleeping on wall-clock delays.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

type DonationUseCase interface {
	Open(targetID string, amount float64, donorName string) (*entity.DonationFlow, error)
	Confirm(flowID string) (*entity.DonationFlow, error)
	Cancel(flowID string) error
	Get(flowID string) (*entity.DonationFlow, error)
}

// donationUseCase runs one short-lived state machine per opened flow:
// idle -> processing -> success -> closed. The two timed transitions are
// simulated delays; the commit to the catalog happens on close. Once a flow
// leaves idle there is no cancellation path.
type donationUseCase struct {
	mu    sync.Mutex
	flows map[string]*entity.DonationFlow

	catalog         CatalogUseCase
	scheduler       Scheduler
	processingDelay time.Duration
	successDelay    time.Duration
	logger          *logger.Logger
}

func NewDonationUseCase(catalog CatalogUseCase, scheduler Scheduler, processingDelay, successDelay time.Duration, log *logger.Logger) DonationUseCase {
	return &donationUseCase{
		flows:           make(map[string]*entity.DonationFlow),
		catalog:         catalog,
		scheduler:       scheduler,
		processingDelay: processingDelay,
		successDelay:    successDelay,
		logger:          log,
	}
}

// Open creates a fresh flow against a project or the platform sentinel.
// Opening never validates the amount; confirmation guards it.
func (uc *donationUseCase) Open(targetID string, amount float64, donorName string) (*entity.DonationFlow, error) {
	if donorName == "" {
		donorName = DefaultDonorName
	}

	flow := &entity.DonationFlow{
		ID:        uuid.New().String(),
		TargetID:  targetID,
		Amount:    amount,
		DonorName: donorName,
		State:     entity.DonationIdle,
		CreatedAt: time.Now(),
	}

	uc.mu.Lock()
	uc.flows[flow.ID] = flow
	uc.mu.Unlock()

	copied := *flow
	return &copied, nil
}

// Confirm starts the simulated payment. A non-positive amount is rejected
// and the flow stays idle.
func (uc *donationUseCase) Confirm(flowID string) (*entity.DonationFlow, error) {
	uc.mu.Lock()
	flow, ok := uc.flows[flowID]
	if !ok {
		uc.mu.Unlock()
		return nil, ErrFlowNotFound
	}
	if flow.State != entity.DonationIdle {
		uc.mu.Unlock()
		return nil, ErrAlreadyConfirmed
	}
	if flow.Amount <= 0 {
		uc.mu.Unlock()
		return nil, ErrInvalidAmount
	}

	flow.State = entity.DonationProcessing
	copied := *flow
	uc.mu.Unlock()

	uc.scheduler.AfterFunc(uc.processingDelay, func() {
		uc.succeed(flowID)
	})

	return &copied, nil
}

// Cancel discards a flow that was never confirmed. Once processing has
// begun the flow always runs to completion.
func (uc *donationUseCase) Cancel(flowID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	flow, ok := uc.flows[flowID]
	if !ok {
		return ErrFlowNotFound
	}
	if flow.State != entity.DonationIdle {
		return ErrCancelDenied
	}

	delete(uc.flows, flowID)
	return nil
}

func (uc *donationUseCase) Get(flowID string) (*entity.DonationFlow, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	flow, ok := uc.flows[flowID]
	if !ok {
		return nil, ErrFlowNotFound
	}
	copied := *flow
	return &copied, nil
}

func (uc *donationUseCase) succeed(flowID string) {
	uc.mu.Lock()
	flow, ok := uc.flows[flowID]
	if !ok || flow.State != entity.DonationProcessing {
		uc.mu.Unlock()
		return
	}
	flow.State = entity.DonationSuccess
	uc.mu.Unlock()

	uc.scheduler.AfterFunc(uc.successDelay, func() {
		uc.close(flowID)
	})
}

func (uc *donationUseCase) close(flowID string) {
	uc.mu.Lock()
	flow, ok := uc.flows[flowID]
	if !ok || flow.State != entity.DonationSuccess {
		uc.mu.Unlock()
		return
	}
	flow.State = entity.DonationClosed
	targetID, amount, donor := flow.TargetID, flow.Amount, flow.DonorName
	uc.mu.Unlock()

	// Commit happens exactly once, on the success -> closed transition
	uc.catalog.RecordDonation(targetID, amount)
	uc.logger.Info("Donation of %.2f from %s committed to %s", amount, donor, targetID)

	// Closed flows stay around for polling, then get evicted so the map
	// does not grow without bound
	uc.scheduler.AfterFunc(closedFlowRetention, func() {
		uc.mu.Lock()
		delete(uc.flows, flowID)
		uc.mu.Unlock()
	})
}
