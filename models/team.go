package models

type Team struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	SportID int    `json:"sport_id" db:"sport_id"`
	Version int    `json:"row_version" db:"row_version"`

	Sport *Sport `json:"sport,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
