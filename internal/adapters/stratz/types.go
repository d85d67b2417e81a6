package stratz

// HeroInfo is one hero from the provider's constants.
type HeroInfo struct {
	ID          int      `json:"id"`
	DisplayName string   `json:"displayName"`
	ShortName   string   `json:"shortName"`
	Roles       []string `json:"roles"`
	// AttackType is "Melee", "Ranged" or empty.
	AttackType string `json:"attackType"`
}

// Pair is one hero-versus-hero figure.
type Pair struct {
	HeroID2 int     `json:"heroId2"`
	Synergy float64 `json:"synergy"`
}

// Side holds the teammate ("with") and opponent ("vs") lists of one
// advantage or disadvantage block.
type Side struct {
	With []Pair `json:"with"`
	Vs   []Pair `json:"vs"`
}

// RawMatchups is the provider's matchup answer for one hero.
type RawMatchups struct {
	HeroID       int  `json:"heroId"`
	Advantage    Side `json:"advantage"`
	Disadvantage Side `json:"disadvantage"`
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type heroesResponse struct {
	Data *struct {
		Constants *struct {
			Heroes []struct {
				ID          int    `json:"id"`
				DisplayName string `json:"displayName"`
				ShortName   string `json:"shortName"`
				Stats       *struct {
					AttackType string `json:"attackType"`
				} `json:"stats"`
			} `json:"heroes"`
			HeroRoleType []struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"heroRoleType"`
		} `json:"constants"`
		HeroStats []struct {
			ID    int   `json:"id"`
			Roles []int `json:"roles"`
		} `json:"heroStats"`
	} `json:"data"`
	Errors []gqlError `json:"errors"`
}

type matchupsResponse struct {
	Data *struct {
		HeroStats *struct {
			HeroVsHeroMatchup *struct {
				Advantage    []Side `json:"advantage"`
				Disadvantage []Side `json:"disadvantage"`
			} `json:"heroVsHeroMatchup"`
		} `json:"heroStats"`
	} `json:"data"`
	Errors []gqlError `json:"errors"`
}
