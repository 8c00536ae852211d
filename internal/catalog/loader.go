package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/yildizm/storefront/internal/logger"
)

// Request is one issued catalog load, tagged with its sequence number
type Request struct {
	Seq    uint64
	Filter Filter
}

// Result is the settled outcome of a Request. Exactly one of Products or
// Err is meaningful: Err is nil on success.
type Result struct {
	Seq      uint64
	Filter   Filter
	Products []Product
	Err      *FetchError
	Duration time.Duration
}

// OK reports whether the load succeeded
func (r *Result) OK() bool {
	return r.Err == nil
}

// Loader validates filters, tags requests and runs them against a Source.
// Its only state between calls is the most recently issued sequence number.
type Loader struct {
	source     Source
	categories *CategorySet
	timeout    time.Duration
	log        *logger.Logger
	latest     atomic.Uint64
}

// LoaderOption customizes a Loader
type LoaderOption func(*Loader)

// WithTimeout bounds each load; zero disables the bound
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.timeout = d }
}

// WithLogger sets the loader's logger
func WithLogger(log *logger.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log.WithComponent("catalog")
		}
	}
}

// NewLoader creates a loader over source for the given category set
func NewLoader(source Source, categories *CategorySet, opts ...LoaderOption) *Loader {
	if categories == nil {
		categories = NewCategorySet(DefaultCategories)
	}
	l := &Loader{
		source:     source,
		categories: categories,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Categories returns the category set requests are validated against
func (l *Loader) Categories() *CategorySet {
	return l.categories
}

// Source returns the underlying source
func (l *Loader) Source() Source {
	return l.source
}

// Begin validates filter and issues a new request, superseding every
// earlier one. Unknown categories fail with ErrInvalidFilter and consume no
// sequence number.
func (l *Loader) Begin(filter Filter) (Request, error) {
	if !l.categories.Valid(filter) {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}
	seq := l.latest.Add(1)
	l.log.DebugWithFields("issued catalog request", []logger.Field{logger.Seq(seq), logger.F("filter", filter)})
	return Request{Seq: seq, Filter: filter}, nil
}

// IsCurrent reports whether seq is the most recently issued request
func (l *Loader) IsCurrent(seq uint64) bool {
	return seq != 0 && seq == l.latest.Load()
}

// Load runs req against the source and settles it. It never returns a Go
// error: every failure is carried in Result.Err.
func (l *Loader) Load(ctx context.Context, req Request) Result {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	products, err := l.source.Fetch(ctx, req.Filter)
	result := Result{
		Seq:      req.Seq,
		Filter:   req.Filter,
		Duration: time.Since(start),
	}

	if err != nil {
		result.Err = AsFetchError(err, req.Filter)
		l.log.WarnWithFields("catalog load failed", []logger.Field{
			logger.Seq(req.Seq),
			logger.F("filter", req.Filter),
			logger.F("kind", result.Err.Kind),
			logger.Duration(result.Duration),
			logger.Error(result.Err),
		})
		return result
	}

	result.Products = products
	l.log.InfoWithFields("catalog load settled", []logger.Field{
		logger.Seq(req.Seq),
		logger.F("filter", req.Filter),
		logger.Count(len(products)),
		logger.Duration(result.Duration),
	})
	return result
}

// Fetch issues and runs a single request, for one-shot callers
func (l *Loader) Fetch(ctx context.Context, filter Filter) (Result, error) {
	req, err := l.Begin(filter)
	if err != nil {
		return Result{}, err
	}
	return l.Load(ctx, req), nil
}
