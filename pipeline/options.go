// SPDX-License-Identifier: EPL-2.0

package pipeline

import "github.com/sirupsen/logrus"

// Option customises a single Run.
type Option func(*runner)

// WithLogger sets the structured logger. The standard logrus logger is used
// by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithNotifier registers n to receive progress events.
func WithNotifier(n Notifier) Option {
	return func(r *runner) {
		r.notifier = n
	}
}
