package domain

import "time"

// TimeOfDay is a coarse part of the day.
type TimeOfDay string

// Parts of the day.
const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// IsValid returns true if the time of day is recognised.
func (t TimeOfDay) IsValid() bool {
	switch t {
	case Morning, Afternoon, Evening, Night:
		return true
	default:
		return false
	}
}

// TimeOfDayAt derives the part of the day from a wall-clock time.
func TimeOfDayAt(t time.Time) TimeOfDay {
	hour := t.Hour()
	switch {
	case hour < 6:
		return Night
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	case hour < 22:
		return Evening
	default:
		return Night
	}
}

// Season is a meteorological season (northern hemisphere).
type Season string

// Seasons.
const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

// IsValid returns true if the season is recognised.
func (s Season) IsValid() bool {
	switch s {
	case Spring, Summer, Fall, Winter:
		return true
	default:
		return false
	}
}

// SeasonAt derives the season from a wall-clock time.
func SeasonAt(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Fall
	default:
		return Winter
	}
}

// Occasion is what the shopper is dressing for.
type Occasion string

// Occasions.
const (
	OccasionCasual Occasion = "casual"
	OccasionFormal Occasion = "formal"
	OccasionWork   Occasion = "work"
	OccasionParty  Occasion = "party"
	OccasionSport  Occasion = "sport"
)

// IsValid returns true if the occasion is recognised. Empty is valid.
func (o Occasion) IsValid() bool {
	switch o {
	case "", OccasionCasual, OccasionFormal, OccasionWork, OccasionParty, OccasionSport:
		return true
	default:
		return false
	}
}

// Weather is the current weather hint.
type Weather string

// Weather hints.
const (
	WeatherSunny Weather = "sunny"
	WeatherRainy Weather = "rainy"
	WeatherCold  Weather = "cold"
	WeatherHot   Weather = "hot"
)

// IsValid returns true if the weather is recognised. Empty is valid.
func (w Weather) IsValid() bool {
	switch w {
	case "", WeatherSunny, WeatherRainy, WeatherCold, WeatherHot:
		return true
	default:
		return false
	}
}

// RecommendationContext carries situational hints for one recommendation call.
// Empty TimeOfDay and Season are filled from the wall clock.
type RecommendationContext struct {
	CurrentProduct *Product  `json:"currentProduct,omitempty"`
	Location       string    `json:"location,omitempty"`
	TimeOfDay      TimeOfDay `json:"timeOfDay,omitempty"`
	Season         Season    `json:"season,omitempty"`
	Occasion       Occasion  `json:"occasion,omitempty"`
	Weather        Weather   `json:"weather,omitempty"`
}

// WithDefaults returns a copy with TimeOfDay and Season derived from now
// when the caller left them empty.
func (c RecommendationContext) WithDefaults(now time.Time) RecommendationContext {
	if c.TimeOfDay == "" {
		c.TimeOfDay = TimeOfDayAt(now)
	}
	if c.Season == "" {
		c.Season = SeasonAt(now)
	}
	return c
}
