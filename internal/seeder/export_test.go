package seeder

import "time"

type mockTimeProvider struct {
	now time.Time
}

func (m mockTimeProvider) Now() time.Time {
	return m.now
}

// WithTimeProvider overrides the clock used to stamp seeded batches.
func WithTimeProvider(now time.Time) Options {
	return func(o *options) {
		o.timeProvider = mockTimeProvider{now: now}
	}
}
