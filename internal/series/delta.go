package series

// Delta returns the percentage change between the two most recent
// observations: (last − previous) / previous × 100. ok is false when
// fewer than two observations exist or the previous value is zero; the
// caller renders that as "no prior data" instead of failing.
func (d Dataset) Delta() (pct float64, ok bool) {
	last, haveLast := d.Last()
	prev, havePrev := d.Previous()
	if !haveLast || !havePrev || prev.Value == 0 {
		return 0, false
	}
	return (last.Value - prev.Value) / prev.Value * 100, true
}
