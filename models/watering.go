package models

// WateringRecord is a saved watering calculation. ID is the public nanoid;
// the numeric row id never leaves the database.
type WateringRecord struct {
	ID          string  `json:"id"`
	UserID      int     `json:"userId"`
	PlantID     string  `json:"plantId"`
	Month       int     `json:"month"`
	Temperature float64 `json:"temperature"`
	PotVolume   float64 `json:"potVolume"`
	PlantFactor float64 `json:"plantFactor"`
	VolumeMl    int     `json:"volumeMl"`
	CreatedAt   string  `json:"createdAt"`
}
