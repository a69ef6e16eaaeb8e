// Package draft models the in-progress treatment plan being edited: its
// scheduling fields, its cost ledger, and the save/cancel transitions that
// end the editing session.
package draft

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrClosed is returned by any transition attempted after Save or Cancel.
	ErrClosed = errors.New("draft is closed")
	// ErrInvalidDate wraps a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)

// Draft is the aggregate for one editing session.
type Draft struct {
	id        string
	patientID string
	name      string
	startDate string
	endDate   string
	status    domain.PlanStatus
	notes     string
	createdAt time.Time

	ledger *Ledger

	now      func() time.Time
	newID    func() string
	onSave   func(domain.TreatmentPlan)
	onCancel func()

	closed bool
}

// Option configures a Draft.
type Option func(*Draft)

// WithClock overrides time.Now, used for the default start date and the
// save timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Draft) { d.now = now }
}

// WithIDGenerator overrides the identifier assigned on first save.
func WithIDGenerator(gen func() string) Option {
	return func(d *Draft) { d.newID = gen }
}

// OnSave registers the persistence hand-off. It is fire-and-forget: the
// draft does not learn whether the remote save succeeded.
func OnSave(fn func(domain.TreatmentPlan)) Option {
	return func(d *Draft) { d.onSave = fn }
}

// OnCancel registers the cancellation signal.
func OnCancel(fn func()) Option {
	return func(d *Draft) { d.onCancel = fn }
}

func newDraft(lookup CategoryLookup, opts []Option) *Draft {
	d := &Draft{
		status: domain.PlanPending,
		ledger: NewLedger(lookup),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.startDate = d.now().Format(domain.DateLayout)
	return d
}

// New starts an empty plan: no lines, zero totals, today's start date and
// pending status.
func New(lookup CategoryLookup, opts ...Option) *Draft {
	return newDraft(lookup, opts)
}

// FromPlan starts an editing session pre-populated from a stored plan.
// Missing fields take the same defaults as New. Line totals, plan totals and
// the selected-category set are rebuilt from the copied lines.
func FromPlan(p *domain.TreatmentPlan, lookup CategoryLookup, opts ...Option) *Draft {
	d := newDraft(lookup, opts)
	if p == nil {
		return d
	}
	d.id = p.ID
	d.patientID = p.PatientID
	d.name = p.Name
	d.startDate = domain.CoalesceStr(p.StartDate, d.startDate)
	d.endDate = p.EndDate
	d.status = domain.CoalesceStatus(p.Status, domain.PlanPending)
	d.notes = p.Notes
	d.createdAt = p.CreatedAt
	d.ledger.load(p.LineItems)
	return d
}

func (d *Draft) ID() string                         { return d.id }
func (d *Draft) PatientID() string                  { return d.patientID }
func (d *Draft) Name() string                       { return d.name }
func (d *Draft) StartDate() string                  { return d.startDate }
func (d *Draft) EndDate() string                    { return d.endDate }
func (d *Draft) Status() domain.PlanStatus          { return d.status }
func (d *Draft) Notes() string                      { return d.notes }
func (d *Draft) Ledger() *Ledger                    { return d.ledger }
func (d *Draft) TotalCost() decimal.Decimal         { return d.ledger.TotalCost() }
func (d *Draft) TotalMaterialCost() decimal.Decimal { return d.ledger.TotalMaterialCost() }
func (d *Draft) Closed() bool                       { return d.closed }

func (d *Draft) SetName(name string) error {
	if d.closed {
		return ErrClosed
	}
	d.name = name
	return nil
}

func (d *Draft) SetPatientID(id string) error {
	if d.closed {
		return ErrClosed
	}
	d.patientID = id
	return nil
}

func (d *Draft) SetNotes(notes string) error {
	if d.closed {
		return ErrClosed
	}
	d.notes = notes
	return nil
}

func (d *Draft) SetStatus(s domain.PlanStatus) error {
	if d.closed {
		return ErrClosed
	}
	if !s.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
	d.status = s
	return nil
}

// SetStartDate requires a YYYY-MM-DD date.
func (d *Draft) SetStartDate(s string) error {
	if d.closed {
		return ErrClosed
	}
	if err := domain.ValidateISODate(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	d.startDate = s
	return nil
}

// SetEndDate accepts "" (not yet set) or a YYYY-MM-DD date.
func (d *Draft) SetEndDate(s string) error {
	if d.closed {
		return ErrClosed
	}
	if s != "" {
		if err := domain.ValidateISODate(s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
	}
	d.endDate = s
	return nil
}

// Snapshot returns the current plan shape. Line items are copied.
func (d *Draft) Snapshot() domain.TreatmentPlan {
	return domain.TreatmentPlan{
		ID:                d.id,
		PatientID:         d.patientID,
		Name:              d.name,
		StartDate:         d.startDate,
		EndDate:           d.endDate,
		Status:            d.status,
		Notes:             d.notes,
		LineItems:         d.ledger.Items(),
		TotalCost:         d.ledger.TotalCost(),
		TotalMaterialCost: d.ledger.TotalMaterialCost(),
		CreatedAt:         d.createdAt,
	}
}

// Save assigns an identifier when the draft has none, closes the draft and
// hands the finished plan to the OnSave callback. A plan without lines is
// valid.
func (d *Draft) Save() (domain.TreatmentPlan, error) {
	if d.closed {
		return domain.TreatmentPlan{}, ErrClosed
	}
	if d.id == "" {
		d.id = d.newID()
	}
	now := d.now().UTC()
	if d.createdAt.IsZero() {
		d.createdAt = now
	}
	d.close()

	plan := d.Snapshot()
	plan.UpdatedAt = now
	if d.onSave != nil {
		d.onSave(plan)
	}
	return plan, nil
}

// Cancel discards the draft. Nothing is persisted.
func (d *Draft) Cancel() error {
	if d.closed {
		return ErrClosed
	}
	d.close()
	if d.onCancel != nil {
		d.onCancel()
	}
	return nil
}

func (d *Draft) close() {
	d.closed = true
	d.ledger.frozen = true
}
