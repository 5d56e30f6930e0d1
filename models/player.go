package models

type Player struct {
	ID        int    `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Number    int    `json:"number" db:"number"`
	TeamID    int    `json:"team_id" db:"team_id"`
	Version   int    `json:"row_version" db:"row_version"`

	Team *Team `json:"team,omitempty" db:"-"`
}
