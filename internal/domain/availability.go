package domain

// OpenInterval is a half-open availability window within a single day,
// expressed in minutes from midnight: [OpenMinute, CloseMinute)
type OpenInterval struct {
	OpenMinute  int
	CloseMinute int
}

// IsValid returns true if the interval is well-formed and fits inside a day
func (i OpenInterval) IsValid() bool {
	return i.OpenMinute >= 0 &&
		i.CloseMinute <= MinutesPerDay &&
		i.OpenMinute < i.CloseMinute
}
