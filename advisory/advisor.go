package advisory

// Advisor answers care questions for "now" according to its clock.
type Advisor struct {
	clock Clock
}

// NewAdvisor returns an Advisor; a nil clock falls back to SystemClock.
func NewAdvisor(clock Clock) *Advisor {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Advisor{clock: clock}
}

// CurrentMonth is the calendar month of the advisor's clock, 1..12.
func (a *Advisor) CurrentMonth() int {
	return int(a.clock.Now().Month())
}

// monthOr returns month when it is set, the clock month otherwise.
func (a *Advisor) monthOr(month int) int {
	if month == 0 {
		return a.CurrentMonth()
	}
	return month
}

// Season resolves the band for month, or for the current month when month is 0.
func (a *Advisor) Season(month int) (SeasonBand, error) {
	return ResolveSeason(a.monthOr(month))
}

// CarePanel builds the care panel for month, or for the current month when
// month is 0.
func (a *Advisor) CarePanel(month int) (CarePanel, error) {
	return BuildCarePanel(a.monthOr(month))
}

// Watering computes the daily volume for month, or for the current month
// when month is 0. The resolved month is returned alongside the volume.
func (a *Advisor) Watering(in WateringInputs, month int) (int, int, error) {
	m := a.monthOr(month)
	volume, err := ComputeWatering(in, m)
	if err != nil {
		return 0, m, err
	}
	return volume, m, nil
}
