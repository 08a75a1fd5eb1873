package weather

import "sort"

// DayBucket holds the samples of one local calendar day, in timestamp order.
type DayBucket struct {
	Date    Date
	Samples []Sample
}

// Buckets is a series grouped by local date, ascending by Date.
type Buckets struct {
	days  []DayBucket
	index map[Date]int
}

// Bucket groups the series' samples by local date using the series' offset.
// Sample order inside each bucket is preserved.
func Bucket(s Series) Buckets {
	b := Buckets{index: make(map[Date]int)}
	for _, sample := range s.Samples {
		d := DateOf(sample.Time, s.TZOffsetSeconds)
		i, ok := b.index[d]
		if !ok {
			i = len(b.days)
			b.index[d] = i
			b.days = append(b.days, DayBucket{Date: d})
		}
		b.days[i].Samples = append(b.days[i].Samples, sample)
	}

	if !sort.SliceIsSorted(b.days, func(i, j int) bool { return b.days[i].Date.Before(b.days[j].Date) }) {
		sort.SliceStable(b.days, func(i, j int) bool { return b.days[i].Date.Before(b.days[j].Date) })
		for i, day := range b.days {
			b.index[day.Date] = i
		}
	}
	return b
}

// Len returns the number of local days present.
func (b Buckets) Len() int {
	return len(b.days)
}

// Days returns the buckets in ascending date order.
func (b Buckets) Days() []DayBucket {
	return b.days
}

// Lookup returns the samples for d.
func (b Buckets) Lookup(d Date) ([]Sample, bool) {
	i, ok := b.index[d]
	if !ok {
		return nil, false
	}
	return b.days[i].Samples, true
}

// Bounds returns the first and last local dates present.
func (b Buckets) Bounds() (from, to Date, ok bool) {
	if len(b.days) == 0 {
		return Date{}, Date{}, false
	}
	return b.days[0].Date, b.days[len(b.days)-1].Date, true
}
