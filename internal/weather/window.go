package weather

// Resolve clips the requested [start, end] window to the dates present in b
// and summarizes every date of the clipped range. Dates inside the range
// without samples get a NoData placeholder, so the number of summaries always
// equals End-Start+1 for an answerable window.
//
// An empty b yields WindowNoData. A window that does not intersect the
// coverage yields WindowOutOfRange with the servable bounds filled in.
func Resolve(b Buckets, offsetSeconds int, start, end Date) (RequestWindow, []DaySummary) {
	w := RequestWindow{RequestedStart: start, RequestedEnd: end}

	from, to, ok := b.Bounds()
	if !ok {
		w.Status = WindowNoData
		return w, nil
	}
	w.AvailableFrom, w.AvailableTo = from, to

	if end.Before(from) || start.After(to) {
		w.Status = WindowOutOfRange
		return w, nil
	}

	w.Start = maxDate(start, from)
	w.End = minDate(end, to)
	w.Status = WindowInRange
	if w.Start != start || w.End != end {
		w.Status = WindowClipped
	}

	days := make([]DaySummary, 0, w.End.DaysSince(w.Start)+1)
	for d := w.Start; !d.After(w.End); d = d.AddDays(1) {
		samples, ok := b.Lookup(d)
		if !ok || len(samples) == 0 {
			days = append(days, NoDataSummary(d))
			continue
		}
		days = append(days, Summarize(d, samples, offsetSeconds))
	}
	return w, days
}
