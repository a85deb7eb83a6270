package fixture

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nardo/usecase-tracker/internal/catalog"
)

// Rand is the source of randomness used to generate records.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Int64N(n int64) int64
	Shuffle(n int, swap func(i, j int))
}

type timeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

var (
	// WindowStart is the inclusive lower bound of generated creation dates.
	WindowStart = time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)
	// WindowEnd is the exclusive upper bound of generated creation dates.
	WindowEnd = time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
)

const (
	base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	// internalIDRandomChars is the number of random base-36 characters appended to the timestamp.
	internalIDRandomChars = 5
)

// Generator builds synthetic records from a catalog.
// A Generator is not safe for concurrent use.
type Generator struct {
	catalog      catalog.Catalog
	rand         Rand
	timeProvider timeProvider
	start, end   time.Time
}

type options struct {
	rand         Rand
	timeProvider timeProvider
	start, end   time.Time
}

// Options represents an optional function to override Generator default values.
type Options func(*options)

// WithRand sets the source of randomness.
func WithRand(r Rand) Options {
	return func(o *options) {
		o.rand = r
	}
}

// WithSeed makes the generator reproducible: two generators with the same seed and clock produce the same records.
func WithSeed(seed uint64) Options {
	return func(o *options) {
		o.rand = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithWindow overrides the creation date window [start, end).
func WithWindow(start, end time.Time) Options {
	return func(o *options) {
		o.start = start
		o.end = end
	}
}

// New returns a Generator sampling from c.
func New(c catalog.Catalog, args ...Options) (*Generator, error) {
	opts := options{
		timeProvider: realTimeProvider{},
		start:        WindowStart,
		end:          WindowEnd,
	}
	for _, opt := range args {
		opt(&opts)
	}

	if opts.rand == nil {
		opts.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	// Creation dates are sampled in milliseconds.
	if opts.start.UnixMilli() >= opts.end.UnixMilli() {
		return nil, fmt.Errorf("%w: creation date window holds no millisecond: [%s, %s)", ErrInvalidArgument, opts.start, opts.end)
	}

	return &Generator{
		catalog:      c,
		rand:         opts.rand,
		timeProvider: opts.timeProvider,
		start:        opts.start,
		end:          opts.end,
	}, nil
}

// Batch generates count records of the given variant, with request IDs 1 to count.
// The variant may use any spelling ParseVariant accepts.
func (g *Generator) Batch(count int, v Variant) (Batch, error) {
	if count <= 0 {
		return Batch{}, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, count)
	}
	v, err := ParseVariant(string(v))
	if err != nil {
		return Batch{}, err
	}

	b := Batch{
		ID:      uuid.New(),
		Variant: v,
		Records: make([]Record, 0, count),
	}
	for i := 1; i <= count; i++ {
		b.Records = append(b.Records, g.Record(i, v))
	}

	slog.Debug("Generated batch", "batch", b.ID, "variant", v, "count", count)
	return b, nil
}

// Record generates the record at position i of a batch.
func (g *Generator) Record(i int, v Variant) Record {
	name, description := names(v, i)

	r := Record{
		RequestID:     strconv.Itoa(i),
		InternalID:    InternalID(g.timeProvider.Now(), g.rand),
		CreationDate:  g.creationDate(),
		Status:        statuses[g.rand.IntN(len(statuses))],
		Name:          name,
		Description:   description,
		Author:        g.author(),
		AnalysisTypes: Sample(g.catalog.AnalysisTypes, g.rand),
		ExternalLink:  ExternalLink,
	}
	if v == VariantJob {
		r.Sources = Sample(g.catalog.Sources, g.rand)
	}

	return r
}

// creationDate returns a uniformly sampled millisecond timestamp in [start, end).
func (g *Generator) creationDate() int64 {
	start := g.start.UnixMilli()
	return start + g.rand.Int64N(g.end.UnixMilli()-start)
}

func (g *Generator) author() string {
	if len(g.catalog.Authors) == 0 {
		return g.catalog.FallbackAuthor
	}
	return g.catalog.Author(g.rand.IntN(len(g.catalog.Authors)))
}

// Sample returns a random non-empty subset of list, in random order.
// The subset size is uniform in [1, len(list)]. list is never modified.
// An empty list yields nil.
func Sample(list []string, r Rand) []string {
	if len(list) == 0 {
		return nil
	}

	shuffled := slices.Clone(list)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	k := r.IntN(len(shuffled)) + 1
	return shuffled[:k:k]
}

// InternalID returns the base-36 encoding of now in milliseconds followed by 5 random base-36 characters.
// Uniqueness is probabilistic only.
func InternalID(now time.Time, r Rand) string {
	id := make([]byte, 0, 16)
	id = strconv.AppendInt(id, now.UnixMilli(), 36)
	for range internalIDRandomChars {
		id = append(id, base36Digits[r.IntN(len(base36Digits))])
	}
	return string(id)
}
