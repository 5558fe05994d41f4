package spots

import "time"

// FishingSpot is a mapped location anglers can browse on the explore screen
type FishingSpot struct {
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	BestSeason  string    `json:"bestSeason" db:"best_season"`
	FishSpecies []string  `json:"fishSpecies" db:"fish_species"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
}
