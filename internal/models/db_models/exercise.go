package db_models

// Exercise is a catalog row. StandardizedName is the lowercase,
// punctuation-stripped, synonym-mapped key used for video lookups.
type Exercise struct {
	BaseModel
	Name             string
	StandardizedName string `gorm:"uniqueIndex"`
	ExerciseType     string
	TrackingType     string
	VideoID          *string
	Description      string
}
