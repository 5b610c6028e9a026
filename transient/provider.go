// Package transient is the in-memory variant.DataProvider. Every kind is
// supported; values live on the Go heap and vanish with their variables.
package transient

import (
	"fmt"
	"log/slog"

	"github.com/LennyHof/Epiphany-sub000/variant"
)

// DateStorage selects how dates are stored.
type DateStorage uint8

const (
	// DateAsDays stores a date as a day count since 0001-01-01.
	DateAsDays DateStorage = iota
	// DateAsComponents stores year, month and day separately.
	DateAsComponents
)

// TimeStorage selects how times of day are stored.
type TimeStorage uint8

const (
	// TimeAuto uses 100-microsecond ticks when the resolution allows it and
	// nanoseconds otherwise.
	TimeAuto TimeStorage = iota
	// TimeAsTicks stores 32-bit 100-microsecond ticks. Specs finer than
	// Microsecond100 are refused.
	TimeAsTicks
	// TimeAsNanos stores 64-bit nanoseconds since midnight.
	TimeAsNanos
	// TimeAsComponents stores hour through nanosecond separately.
	TimeAsComponents
)

// String returns the name of the time storage.
func (s TimeStorage) String() string {
	switch s {
	case TimeAuto:
		return "auto"
	case TimeAsTicks:
		return "ticks"
	case TimeAsNanos:
		return "nanos"
	case TimeAsComponents:
		return "components"
	default:
		return "unknown"
	}
}

// Provider is the in-memory data provider.
type Provider struct {
	logger      *slog.Logger
	metrics     *Metrics
	dateStorage DateStorage
	timeStorage TimeStorage
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// WithMetrics records adaptor creation in m.
func WithMetrics(m *Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

// WithDateStorage selects the date storage strategy.
func WithDateStorage(s DateStorage) Option {
	return func(p *Provider) { p.dateStorage = s }
}

// WithTimeStorage selects the time storage strategy.
func WithTimeStorage(s TimeStorage) Option {
	return func(p *Provider) { p.timeStorage = s }
}

// New returns a transient provider.
func New(opts ...Option) *Provider {
	p := &Provider{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ variant.DataProvider = (*Provider)(nil)

func (p *Provider) created(kind variant.Kind, spec variant.PrimitiveSpec) {
	p.logger.Debug("transient adaptor created", "kind", kind, "spec", spec.String())
	if p.metrics != nil {
		p.metrics.AdaptorsCreated.WithLabelValues(kind.String()).Inc()
	}
}

func (p *Provider) refused(kind variant.Kind, err error) error {
	p.logger.Debug("transient adaptor refused", "kind", kind, "err", err)
	if p.metrics != nil {
		p.metrics.AdaptorErrors.WithLabelValues(kind.String()).Inc()
	}
	return err
}

// BooleanAdaptor returns in-memory storage for a Boolean spec.
func (p *Provider) BooleanAdaptor(spec *variant.BooleanSpec) (variant.BooleanAdaptor, error) {
	p.created(variant.KindBoolean, spec)
	return &boolCell{}, nil
}

// IntegerAdaptor returns in-memory storage for an Integer spec.
func (p *Provider) IntegerAdaptor(spec *variant.IntegerSpec) (variant.IntegerAdaptor, error) {
	enc, _ := spec.Encoding()
	w, _ := spec.Storage()
	var a variant.IntegerAdaptor
	switch {
	case enc == variant.Signed && w == variant.B8:
		a = &intCell[int8]{}
	case enc == variant.Signed && w == variant.B16:
		a = &intCell[int16]{}
	case enc == variant.Signed && w == variant.B32:
		a = &intCell[int32]{}
	case enc == variant.Signed && w == variant.B64:
		a = &intCell[int64]{}
	case enc == variant.Unsigned && w == variant.B8:
		a = &intCell[uint8]{}
	case enc == variant.Unsigned && w == variant.B16:
		a = &intCell[uint16]{}
	case enc == variant.Unsigned && w == variant.B32:
		a = &intCell[uint32]{}
	case enc == variant.Unsigned && w == variant.B64:
		a = &intCell[uint64]{}
	default:
		return nil, p.refused(variant.KindInteger, fmt.Errorf("%w: integer %s", variant.ErrNotSupported, spec))
	}
	p.created(variant.KindInteger, spec)
	return a, nil
}

// FloatAdaptor returns in-memory storage for a Float spec.
func (p *Provider) FloatAdaptor(spec *variant.FloatSpec) (variant.FloatAdaptor, error) {
	w, _ := spec.Storage()
	p.created(variant.KindFloat, spec)
	if w == variant.B32 {
		return &floatCell[float32]{}, nil
	}
	return &floatCell[float64]{}, nil
}

// StringAdaptor returns in-memory storage for a String spec.
func (p *Provider) StringAdaptor(spec *variant.StringSpec) (variant.StringAdaptor, error) {
	p.created(variant.KindString, spec)
	return &stringCell{}, nil
}

// GuidAdaptor returns in-memory storage for a Guid spec.
func (p *Provider) GuidAdaptor(spec *variant.GuidSpec) (variant.GuidAdaptor, error) {
	p.created(variant.KindGuid, spec)
	return &guidCell{}, nil
}

// DateAdaptor returns in-memory storage for a Date spec.
func (p *Provider) DateAdaptor(spec *variant.DateSpec) (variant.DateAdaptor, error) {
	p.created(variant.KindDate, spec)
	return p.newDate(), nil
}

func (p *Provider) newDate() variant.DateAdaptor {
	if p.dateStorage == DateAsComponents {
		return &dateYMD{year: 1, month: 1, day: 1}
	}
	return &dateDays{}
}

func (p *Provider) newTime(kind variant.Kind, r variant.TimeResolution) (variant.TimeAdaptor, error) {
	switch p.timeStorage {
	case TimeAsNanos:
		return &timeNanos{}, nil
	case TimeAsComponents:
		return &timeComponents{}, nil
	case TimeAsTicks:
		if !r.FitsTicks() {
			return nil, p.refused(kind, fmt.Errorf("%w: tick storage cannot hold %s resolution", variant.ErrNotSupported, r))
		}
		return &timeTicks{}, nil
	default:
		if r.FitsTicks() {
			return &timeTicks{}, nil
		}
		return &timeNanos{}, nil
	}
}

// TimeAdaptor returns in-memory storage for a Time spec.
func (p *Provider) TimeAdaptor(spec *variant.TimeSpec) (variant.TimeAdaptor, error) {
	r, _ := spec.Resolution()
	a, err := p.newTime(variant.KindTime, r)
	if err != nil {
		return nil, err
	}
	p.created(variant.KindTime, spec)
	return a, nil
}

// DateTimeAdaptor returns in-memory storage for a DateTime spec.
func (p *Provider) DateTimeAdaptor(spec *variant.DateTimeSpec) (variant.DateTimeAdaptor, error) {
	r, _ := spec.Resolution()
	t, err := p.newTime(variant.KindDateTime, r)
	if err != nil {
		return nil, err
	}
	p.created(variant.KindDateTime, spec)
	return &dateTime{date: p.newDate(), time: t}, nil
}

// DurationAdaptor returns in-memory storage for a Duration spec.
func (p *Provider) DurationAdaptor(spec *variant.DurationSpec) (variant.DurationAdaptor, error) {
	p.created(variant.KindDuration, spec)
	return &durationCell{}, nil
}

// ListAdaptor returns in-memory storage for a List spec.
func (p *Provider) ListAdaptor(spec *variant.ListSpec) (variant.ListAdaptor, error) {
	st, _ := spec.Storage()
	l := &list{policy: st.Policy, size: st.Size}
	switch st.Policy {
	case variant.PolicyFixedSize:
		l.items = make([]*variant.Variable, st.Size)
		for i := range l.items {
			e, err := variant.NewVariable(p, spec.Element())
			if err != nil {
				return nil, p.refused(variant.KindList, err)
			}
			l.items[i] = e
		}
	case variant.PolicyFixedCapacity, variant.PolicyInitialCapacity:
		l.items = make([]*variant.Variable, 0, st.Size)
	}
	p.created(variant.KindList, spec)
	return l, nil
}

// SetAdaptor returns in-memory storage for a Set spec.
func (p *Provider) SetAdaptor(spec *variant.SetSpec) (variant.SetAdaptor, error) {
	p.created(variant.KindSet, spec)
	if o, _ := spec.Ordering(); o == variant.Ordered {
		return newOrderedSet(), nil
	}
	return newHashSet(), nil
}

// MapAdaptor returns in-memory storage for a Map spec.
func (p *Provider) MapAdaptor(spec *variant.MapSpec) (variant.MapAdaptor, error) {
	p.created(variant.KindMap, spec)
	if o, _ := spec.Ordering(); o == variant.Ordered {
		return newOrderedMap(), nil
	}
	return newHashMap(), nil
}

// TupleAdaptor returns in-memory storage for a Tuple spec.
func (p *Provider) TupleAdaptor(spec *variant.TupleSpec) (variant.TupleAdaptor, error) {
	t := &tuple{items: make([]*variant.Variable, spec.Len())}
	for i, es := range spec.Elements() {
		e, err := variant.NewVariable(p, es)
		if err != nil {
			return nil, p.refused(variant.KindTuple, err)
		}
		t.items[i] = e
	}
	p.created(variant.KindTuple, spec)
	return t, nil
}

// SequenceAdaptor returns an empty sequence. Sequences with elements are
// views produced by collection accessors.
func (p *Provider) SequenceAdaptor(spec *variant.SequenceSpec) (variant.SequenceAdaptor, error) {
	p.created(variant.KindSequence, spec)
	return emptySequence{}, nil
}
