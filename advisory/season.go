// Package advisory resolves calendar months to seasonal care parameters and
// computes recommended daily watering volumes.
package advisory

import (
	"fmt"
	"strings"

	"go-plantcare/models"
)

// Season is one of the four fixed calendar groupings.
type Season int

const (
	Spring Season = iota + 1
	Summer
	Autumn
	Winter
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	}
	return fmt.Sprintf("season(%d)", int(s))
}

// MarshalText renders the season by name in JSON and YAML output.
func (s Season) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a season name.
func (s *Season) UnmarshalText(b []byte) error {
	for _, candidate := range []Season{Spring, Summer, Autumn, Winter} {
		if candidate.String() == string(b) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: unknown season %q", models.ErrInvalidInput, b)
}

// Range is an inclusive low/high pair.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// String renders the range as "low–high".
func (r Range) String() string {
	return fmt.Sprintf("%d–%d", r.Low, r.High)
}

// SeasonBand carries the display ranges and formula constants of a season.
type SeasonBand struct {
	Season      Season `json:"season"`
	Phase       string `json:"phase"`
	LightHours  Range  `json:"lightHours"`
	Temperature Range  `json:"temperature"`
	// FeedingSteps is 2 for "1–2 feedings", 1 for a single feeding and 0
	// when the plant must not be fed.
	FeedingSteps int     `json:"feedingSteps"`
	LightConst   float64 `json:"lightConst"`
	TempConst    float64 `json:"tempConst"`
	Multiplier   float64 `json:"multiplier"`
}

var bands = map[Season]SeasonBand{
	Spring: {
		Season:       Spring,
		Phase:        "Active growth phase",
		LightHours:   Range{8, 10},
		Temperature:  Range{15, 25},
		FeedingSteps: 2,
		LightConst:   9,
		TempConst:    20,
		Multiplier:   1.0,
	},
	Summer: {
		Season:       Summer,
		Phase:        "Peak activity phase",
		LightHours:   Range{12, 14},
		Temperature:  Range{20, 30},
		FeedingSteps: 2,
		LightConst:   13,
		TempConst:    25,
		Multiplier:   1.3,
	},
	Autumn: {
		Season:       Autumn,
		Phase:        "Pre-dormancy phase",
		LightHours:   Range{6, 8},
		Temperature:  Range{5, 15},
		FeedingSteps: 1,
		LightConst:   7,
		TempConst:    10,
		Multiplier:   0.6,
	},
	Winter: {
		Season:       Winter,
		Phase:        "Dormancy phase",
		LightHours:   Range{4, 6},
		Temperature:  Range{0, 10},
		FeedingSteps: 0,
		LightConst:   5,
		TempConst:    5,
		Multiplier:   0.2,
	},
}

// monthSeasons is indexed by calendar month; index 0 is unused.
var monthSeasons = [13]Season{
	0,
	Winter, Winter,
	Spring, Spring, Spring,
	Summer, Summer, Summer,
	Autumn, Autumn, Autumn,
	Winter,
}

// ValidateMonth reports ErrInvalidInput for anything outside 1..12.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d is outside 1..12", models.ErrInvalidInput, month)
	}
	return nil
}

// SeasonOf returns the season containing month.
func SeasonOf(month int) (Season, error) {
	if err := ValidateMonth(month); err != nil {
		return 0, err
	}
	return monthSeasons[month], nil
}

// ResolveSeason returns the band for month.
func ResolveSeason(month int) (SeasonBand, error) {
	s, err := SeasonOf(month)
	if err != nil {
		return SeasonBand{}, err
	}
	return bands[s], nil
}

// Bands returns all four bands in calendar order starting with spring.
func Bands() []SeasonBand {
	return []SeasonBand{bands[Spring], bands[Summer], bands[Autumn], bands[Winter]}
}

// BandByName returns the band of the season called name, ignoring case.
func BandByName(name string) (SeasonBand, error) {
	var s Season
	if err := s.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return SeasonBand{}, err
	}
	return bands[s], nil
}
