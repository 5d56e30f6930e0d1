package models

// Sport is a discipline the league runs, e.g. "Football".
type Sport struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Version int    `json:"row_version" db:"row_version"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
