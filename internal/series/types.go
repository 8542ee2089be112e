package series

import "sort"

// Observation is a single (period, value) pair of a statistical series.
// Period is always the canonical "YYYY-MM" form after normalization.
type Observation struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// Dataset is the ordered observation sequence for one table, ascending by
// period. Period uniqueness is assumed from the source, not enforced.
type Dataset []Observation

// Last returns the most recent observation.
func (d Dataset) Last() (Observation, bool) {
	if len(d) == 0 {
		return Observation{}, false
	}
	return d[len(d)-1], true
}

// Previous returns the second most recent observation.
func (d Dataset) Previous() (Observation, bool) {
	if len(d) < 2 {
		return Observation{}, false
	}
	return d[len(d)-2], true
}

func (d Dataset) sortByPeriod() {
	sort.SliceStable(d, func(i, j int) bool {
		return d[i].Period < d[j].Period
	})
}
