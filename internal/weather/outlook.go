package weather

// BuildOutlook runs the engine for a raw series and a requested local window:
// the series is extended toward end when it falls short, bucketed by local
// date, clipped to the coverage and summarized day by day.
//
// horizonDays bounds synthesis to that many days past the last real day, so
// a far-future request costs no more than a near one and resolves as
// WindowOutOfRange. horizonDays <= 0 serves real coverage only; callers use
// it when the series fails CheckCadence.
func BuildOutlook(s Series, start, end Date, horizonDays int) Outlook {
	if horizonDays > 0 {
		if _, last, ok := Bucket(s).Bounds(); ok {
			s = Extend(s, minDate(end, last.AddDays(horizonDays)))
		}
	}
	window, days := Resolve(Bucket(s), s.TZOffsetSeconds, start, end)
	return Outlook{
		Location: s.Location,
		Window:   window,
		Days:     days,
	}
}
