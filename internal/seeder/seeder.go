// Package seeder loads fixture batches into the local store and promotes the records waiting to be processed.
package seeder

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nardo/usecase-tracker/internal/attrvalue"
	"github.com/nardo/usecase-tracker/internal/constants"
	"github.com/nardo/usecase-tracker/internal/fixture"
	"github.com/nardo/usecase-tracker/internal/store"
	"github.com/ubuntu/decorate"
)

// ErrEmptyBatch is returned when seeding a batch without records.
var ErrEmptyBatch = errors.New("batch has no records")

// Message is published for every record promoted by Process.
type Message struct {
	Table     string
	RequestID string
	Status    fixture.Status
}

func (m Message) String() string {
	kind := "JOB"
	if m.Table == constants.UseCaseTable {
		kind = "USE CASE"
	}
	return fmt.Sprintf("%s %s UPDATED TO %s", kind, m.RequestID, strings.ToUpper(string(m.Status)))
}

// Notifier publishes processing notifications.
type Notifier interface {
	Publish(ctx context.Context, m Message) error
}

// LogNotifier publishes messages as INFO log records.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a Notifier logging to logger, or to the default logger if nil.
func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

// Publish implements Notifier.
func (n LogNotifier) Publish(ctx context.Context, m Message) error {
	logger := n.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, m.String(), "table", m.Table, "requestID", m.RequestID, "status", m.Status)
	return nil
}

// BatchInfo is the metadata stored for every seeded batch.
type BatchInfo struct {
	ID       uuid.UUID       `json:"id"`
	Variant  fixture.Variant `json:"variant"`
	Table    string          `json:"table"`
	Count    int             `json:"count"`
	SeededAt time.Time       `json:"seededAt"`
}

type timeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// Seeder writes the records of one variant into their table.
type Seeder struct {
	backend      store.Backend
	variant      fixture.Variant
	table        string
	notifier     Notifier
	timeProvider timeProvider
}

type options struct {
	notifier     Notifier
	timeProvider timeProvider
}

// Options represents an optional function to override Seeder default values.
type Options func(*options)

// WithNotifier sets where Process publishes its messages. Messages are logged by default.
func WithNotifier(n Notifier) Options {
	return func(o *options) {
		o.notifier = n
	}
}

// Table returns the name of the table holding records of variant v.
func Table(v fixture.Variant) string {
	if v == fixture.VariantUseCase {
		return constants.UseCaseTable
	}
	return constants.JobTable
}

// New returns a Seeder for records of variant v stored in backend.
func New(backend store.Backend, v fixture.Variant, args ...Options) (*Seeder, error) {
	v, err := fixture.ParseVariant(string(v))
	if err != nil {
		return nil, err
	}

	opts := options{
		notifier:     LogNotifier{},
		timeProvider: realTimeProvider{},
	}
	for _, opt := range args {
		opt(&opts)
	}

	return &Seeder{
		backend:      backend,
		variant:      v,
		table:        Table(v),
		notifier:     opts.notifier,
		timeProvider: opts.timeProvider,
	}, nil
}

// Seed writes every record of b, keyed by request ID, and the batch metadata in a single transaction.
// Existing records with the same request IDs are replaced.
// A batch without ID, as decoded from typed documents, gets a new one.
func (s *Seeder) Seed(ctx context.Context, b fixture.Batch) (info BatchInfo, err error) {
	defer decorate.OnError(&err, "could not seed %s records", s.variant)

	if b.Variant != s.variant {
		return BatchInfo{}, fmt.Errorf("%w: batch holds %q records, seeder expects %q", fixture.ErrInvalidArgument, b.Variant, s.variant)
	}
	if len(b.Records) == 0 {
		return BatchInfo{}, ErrEmptyBatch
	}

	info = BatchInfo{
		ID:       b.ID,
		Variant:  b.Variant,
		Table:    s.table,
		Count:    len(b.Records),
		SeededAt: s.timeProvider.Now(),
	}
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}

	err = s.backend.Update(func(tx store.Transaction) error {
		for _, name := range []string{s.table, constants.BatchesTable} {
			if err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		table := tx.Bucket(s.table)
		for _, r := range b.Records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := store.PutJSON(table, r.RequestID, fixture.ToItem(s.variant, r)); err != nil {
				return err
			}
		}

		return store.PutJSON(tx.Bucket(constants.BatchesTable), info.ID.String(), info)
	})
	if err != nil {
		return BatchInfo{}, err
	}

	slog.Info("Seeded batch", "batch", info.ID, "table", s.table, "count", info.Count)
	return info, nil
}

// Records returns the stored records in numeric request ID order, which is generation order.
// A table that was never seeded holds no records.
func (s *Seeder) Records(ctx context.Context) (records []fixture.Record, err error) {
	defer decorate.OnError(&err, "could not list %s records", s.variant)

	err = s.backend.View(func(tx store.Transaction) error {
		table := tx.Bucket(s.table)
		if table == nil {
			return nil
		}
		return table.ForEach(func(k string, _ []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := s.record(table, k)
			if err != nil {
				return err
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Keys are ordered bytewise. Request IDs are decimal without leading zeros, so shorter is smaller.
	slices.SortFunc(records, func(a, b fixture.Record) int {
		return cmp.Or(cmp.Compare(len(a.RequestID), len(b.RequestID)), strings.Compare(a.RequestID, b.RequestID))
	})
	return records, nil
}

// Batches returns the metadata of every seeded batch.
func (s *Seeder) Batches() (batches []BatchInfo, err error) {
	defer decorate.OnError(&err, "could not list batches")

	err = s.backend.View(func(tx store.Transaction) error {
		bkt := tx.Bucket(constants.BatchesTable)
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k string, _ []byte) error {
			var info BatchInfo
			if _, err := store.GetJSON(bkt, k, &info); err != nil {
				return err
			}
			batches = append(batches, info)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// Process moves every NotStarted record to InProgress in a single transaction,
// then publishes one message per promoted record.
// It returns the number of messages published.
func (s *Seeder) Process(ctx context.Context) (n int, err error) {
	defer decorate.OnError(&err, "could not process %s records", s.variant)

	statusAttr := fixture.StatusAttribute(s.variant)
	var promoted []Message

	err = s.backend.Update(func(tx store.Transaction) error {
		table := tx.Bucket(s.table)
		if table == nil {
			return nil
		}

		// Keys are collected first: the bucket cannot be modified while iterating it.
		var queued []string
		err := table.ForEach(func(k string, _ []byte) error {
			var it attrvalue.Item
			if _, err := store.GetJSON(table, k, &it); err != nil {
				return err
			}
			status, err := it.String(statusAttr)
			if err != nil {
				return fmt.Errorf("record %s: %w", k, err)
			}
			if fixture.Status(status) == fixture.StatusNotStarted {
				queued = append(queued, k)
			}
			return nil
		})
		if err != nil {
			return err
		}
		slog.Debug("Records to promote", "table", s.table, "count", len(queued))

		for _, k := range queued {
			if err := ctx.Err(); err != nil {
				return err
			}
			var it attrvalue.Item
			if _, err := store.GetJSON(table, k, &it); err != nil {
				return err
			}
			it[statusAttr] = attrvalue.S(string(fixture.StatusInProgress))
			if err := store.PutJSON(table, k, it); err != nil {
				return err
			}
			promoted = append(promoted, Message{Table: s.table, RequestID: k, Status: fixture.StatusInProgress})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, m := range promoted {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := s.notifier.Publish(ctx, m); err != nil {
			return n, fmt.Errorf("could not publish update of record %s: %w", m.RequestID, err)
		}
		n++
	}

	return n, nil
}

func (s *Seeder) record(table store.Bucket, key string) (fixture.Record, error) {
	var it attrvalue.Item
	if _, err := store.GetJSON(table, key, &it); err != nil {
		return fixture.Record{}, err
	}
	r, err := fixture.FromItem(s.variant, it)
	if err != nil {
		return fixture.Record{}, fmt.Errorf("record %s: %w", key, err)
	}
	return r, nil
}
