package domain

import (
	"fmt"
	"time"
)

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал, приводя границы к UTC с точностью до минуты
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: NormalizeTime(start), End: NormalizeTime(end)}
}

// NormalizeTime приводит время к UTC и отбрасывает секунды
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

// Overlaps true тогда и только тогда, когда aEnd > bStart и aStart < bEnd.
// Интервал, заканчивающийся ровно в момент начала другого, с ним не пересекается.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aEnd.After(bStart) && aStart.Before(bEnd)
}

// IsValid true, если Start < End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// IsZero true, если обе границы не заданы
func (i Interval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}

// Overlaps проверяет пересечение с другим интервалом
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// Duration длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) String() string {
	return fmt.Sprintf("%s-%s", i.Start.Format(DisplayTimeFormat), i.End.Format(DisplayTimeFormat))
}
