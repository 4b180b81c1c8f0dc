package relevance

// Weights holds all tunable scoring values. Any consistent set where
// exact > prefix > substring > content keeps result ordering sensible;
// the defaults below are the shipped configuration.
type Weights struct {
	// Title/name match scores, strongest first.
	ExactTitleScore     float64 `yaml:"exact_title_score"`     // default: 100
	TitlePrefixScore    float64 `yaml:"title_prefix_score"`    // default: 75
	TitleSubstringScore float64 `yaml:"title_substring_score"` // default: 50

	// Content/body match score.
	ContentMatchScore float64 `yaml:"content_match_score"` // default: 25

	// Recency bonus tiers, additive on top of a positive match score so that
	// otherwise-tied results favor newer items. Bonuses must stay below the
	// gap between adjacent match scores or a fresh weaker match overtakes a
	// stale stronger one.
	RecencyEnabled    *bool   `yaml:"recency_enabled"`     // default: true
	RecencyDayBonus   float64 `yaml:"recency_day_bonus"`   // default: 10
	RecencyWeekBonus  float64 `yaml:"recency_week_bonus"`  // default: 5
	RecencyMonthBonus float64 `yaml:"recency_month_bonus"` // default: 2
}

// RecencyEnabledOrDefault returns whether the recency bonus applies,
// defaulting to true when unset.
func (w *Weights) RecencyEnabledOrDefault() bool {
	if w.RecencyEnabled == nil {
		return true
	}
	return *w.RecencyEnabled
}

// DefaultWeights returns the default scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		ExactTitleScore:     100,
		TitlePrefixScore:    75,
		TitleSubstringScore: 50,
		ContentMatchScore:   25,
		RecencyDayBonus:     10,
		RecencyWeekBonus:    5,
		RecencyMonthBonus:   2,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (w *Weights) ApplyDefaults() {
	defaults := DefaultWeights()

	if w.ExactTitleScore == 0 {
		w.ExactTitleScore = defaults.ExactTitleScore
	}
	if w.TitlePrefixScore == 0 {
		w.TitlePrefixScore = defaults.TitlePrefixScore
	}
	if w.TitleSubstringScore == 0 {
		w.TitleSubstringScore = defaults.TitleSubstringScore
	}
	if w.ContentMatchScore == 0 {
		w.ContentMatchScore = defaults.ContentMatchScore
	}
	if w.RecencyDayBonus == 0 {
		w.RecencyDayBonus = defaults.RecencyDayBonus
	}
	if w.RecencyWeekBonus == 0 {
		w.RecencyWeekBonus = defaults.RecencyWeekBonus
	}
	if w.RecencyMonthBonus == 0 {
		w.RecencyMonthBonus = defaults.RecencyMonthBonus
	}
}
