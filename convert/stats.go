package convert

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stats counts processing results. For a single document only Elements and
// Usages are set.
type Stats struct {
	Files    int
	Failed   int
	Skipped  int
	Elements int
	Usages   int
}

func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("files", s.Files)
	if s.Failed > 0 {
		enc.AddInt("failed", s.Failed)
	}
	if s.Skipped > 0 {
		enc.AddInt("skipped", s.Skipped)
	}
	enc.AddInt("elements", s.Elements)
	enc.AddInt("usages", s.Usages)
	return nil
}

func (s Stats) zap() zap.Field {
	return zap.Object("stats", s)
}

// counters aggregates Stats from concurrently processed documents.
type counters struct {
	files, failed, skipped, elements, usages atomic.Int64
}

func (c *counters) add(s Stats) {
	c.files.Add(int64(s.Files))
	c.failed.Add(int64(s.Failed))
	c.skipped.Add(int64(s.Skipped))
	c.elements.Add(int64(s.Elements))
	c.usages.Add(int64(s.Usages))
}

func (c *counters) snapshot() Stats {
	return Stats{
		Files:    int(c.files.Load()),
		Failed:   int(c.failed.Load()),
		Skipped:  int(c.skipped.Load()),
		Elements: int(c.elements.Load()),
		Usages:   int(c.usages.Load()),
	}
}
