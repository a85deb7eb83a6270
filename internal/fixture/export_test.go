package fixture

import "time"

type mockTimeProvider struct {
	now time.Time
}

func (m mockTimeProvider) Now() time.Time {
	return m.now
}

// WithTimeProvider overrides the clock used for internal IDs.
func WithTimeProvider(now time.Time) Options {
	return func(o *options) {
		o.timeProvider = mockTimeProvider{now: now}
	}
}
