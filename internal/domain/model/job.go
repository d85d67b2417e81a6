package model

// FetchJob asks the sync workers to pull matchup statistics for one hero.
type FetchJob struct {
	RunID  string // sync run the job belongs to
	Hero   string // display name
	HeroID int    // upstream numeric id
}
