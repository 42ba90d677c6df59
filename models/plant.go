package models

// Plant is a single catalog entry. ID is unique within a catalog and doubles
// as the image filename stem.
type Plant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
}

// ImagePath returns the relative path of the plant's picture.
func (p Plant) ImagePath() string {
	return "images/" + p.ID + ".png"
}

// Catalog is the loaded list of plants. It is never mutated after loading;
// filters return new slices.
type Catalog []Plant

// CatalogDocument is the on-disk and on-wire shape of a catalog.
type CatalogDocument struct {
	Plants Catalog `json:"plants"`
}

// PlantView is a plant as rendered in list responses.
type PlantView struct {
	Plant
	Image string `json:"image"`
	Link  string `json:"link"`
}

// NewPlantView builds the list representation of p.
func NewPlantView(p Plant) PlantView {
	return PlantView{
		Plant: p,
		Image: p.ImagePath(),
		Link:  "/plants/" + p.ID,
	}
}
