package advisory

// Advice texts shown on the care panel.
const (
	FeedingTwice   = "feed 1–2 times with live insect prey"
	FeedingOnce    = "feed once — plant is preparing for dormancy"
	FeedingNone    = "plant is dormant, no feeding needed."
	WateringMethod = "use only distilled or rain water; keep the substrate moist but not soaked; water from below through a tray."
	RepotAllowed   = "repot into fresh peat and sand substrate"
	RepotForbidden = "repotting is not recommended in this period"
)

// repotMonth is the only month in which repotting is advised. Months 4 and 5
// share its band but still do not qualify.
const repotMonth = 3

// CarePanel is the seasonal care section of a plant detail page.
type CarePanel struct {
	Month            int    `json:"month"`
	Season           Season `json:"season"`
	Phase            string `json:"phase"`
	LightHours       string `json:"lightHours"`
	TemperatureRange string `json:"temperatureRange"`
	Feeding          string `json:"feeding"`
	Watering         string `json:"watering"`
	Repotting        string `json:"repotting"`
	RepotAllowed     bool   `json:"repotAllowed"`
}

// FeedingAdvice maps a band's feeding steps to its advice text.
func FeedingAdvice(steps int) string {
	switch {
	case steps >= 2:
		return FeedingTwice
	case steps == 1:
		return FeedingOnce
	default:
		return FeedingNone
	}
}

// RepotPermitted reports whether month is the repotting month.
func RepotPermitted(month int) bool {
	return month == repotMonth
}

// BuildCarePanel assembles the care panel for a calendar month.
func BuildCarePanel(month int) (CarePanel, error) {
	band, err := ResolveSeason(month)
	if err != nil {
		return CarePanel{}, err
	}

	panel := CarePanel{
		Month:            month,
		Season:           band.Season,
		Phase:            band.Phase,
		LightHours:       band.LightHours.String() + " h",
		TemperatureRange: band.Temperature.String() + " °C",
		Feeding:          FeedingAdvice(band.FeedingSteps),
		Watering:         WateringMethod,
		Repotting:        RepotForbidden,
	}
	if RepotPermitted(month) {
		panel.RepotAllowed = true
		panel.Repotting = RepotAllowed
	}
	return panel, nil
}
