package memory

import "github.com/sirupsen/logrus"

// Logged wraps a Resource and logs every acquisition and release.
type Logged struct {
	r   Resource
	log logrus.FieldLogger
}

// WithLogging returns r decorated with logging to log. A nil log uses the
// standard logrus logger.
func WithLogging(r Resource, log logrus.FieldLogger) *Logged {
	if r == nil {
		r = NewHeap()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Logged{r: r, log: log}
}

// Acquire forwards to the wrapped resource.
func (l *Logged) Acquire(bytes int) error {
	if err := l.r.Acquire(bytes); err != nil {
		l.log.WithError(err).WithField("bytes", bytes).Warn("acquire refused")
		return err
	}
	l.log.WithField("bytes", bytes).Debug("acquire")
	return nil
}

// Release forwards to the wrapped resource.
func (l *Logged) Release(bytes int) {
	l.r.Release(bytes)
	l.log.WithField("bytes", bytes).Debug("release")
}

// Stats returns the wrapped resource's stats, or the zero Stats if it keeps
// none.
func (l *Logged) Stats() Stats {
	if sr, ok := l.r.(StatsReporter); ok {
		return sr.Stats()
	}
	return Stats{}
}

// Unwrap returns the decorated resource.
func (l *Logged) Unwrap() Resource { return l.r }
