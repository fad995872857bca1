package numbering

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Source lists the already-issued numbers of a scheme whose stamp falls inside
// a period. Implemented by the claim repository.
type Source interface {
	Numbers(ctx context.Context, scheme Scheme, from, to time.Time) ([]string, error)
}

// Generator derives the next monthly sequence for a scheme. State is never
// retained between calls: every mint re-scans persisted history, so two racing
// mints in the same period can collide. The unique indexes on the number
// columns plus the claim service retry loop resolve that race.
type Generator struct {
	src Source
	log *zap.Logger
}

func NewGenerator(src Source, log *zap.Logger) *Generator {
	return &Generator{src: src, log: log.Named("numbering.generator")}
}

// Next returns max+1 over the scheme's sequences in the calendar month of at,
// or 1 when the month has none.
func (g *Generator) Next(ctx context.Context, scheme Scheme, at time.Time) (int64, error) {
	from, to := MonthRange(at)

	numbers, err := g.src.Numbers(ctx, scheme, from, to)
	if err != nil {
		return 0, fmt.Errorf("%w: scan %s: %v", ErrGeneration, scheme, err)
	}

	var max int64
	for _, number := range numbers {
		seq, err := sequenceOf(scheme, number)
		if err != nil {
			// A malformed persisted number is a data defect, not a reason to
			// mint a colliding fallback.
			return 0, fmt.Errorf("%w: parse %s %q: %v", ErrGeneration, scheme, number, err)
		}
		if seq > max {
			max = seq
		}
	}

	g.log.Debug("sequence derived",
		zap.String("scheme", string(scheme)),
		zap.Time("period_start", from),
		zap.Int64("next", max+1),
	)
	return max + 1, nil
}

func sequenceOf(scheme Scheme, number string) (int64, error) {
	if scheme == SchemeSubmission {
		spm, err := ParseSpmNumber(number)
		if err != nil {
			return 0, err
		}
		return spm.Sequence, nil
	}
	return TrailingSeq(number)
}
