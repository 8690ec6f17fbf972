package models

// Exercise is a catalog entry shared by all users.
type Exercise struct {
	Base
	Name        string             `gorm:"size:200;not null" json:"name" yaml:"name"`
	MuscleGroup string             `gorm:"size:50;index;not null" json:"muscleGroup" yaml:"muscleGroup"`
	Equipment   string             `gorm:"size:50;index" json:"equipment" yaml:"equipment"`
	Description string             `gorm:"type:text" json:"description" yaml:"description"`
	ImageURL    string             `json:"imageUrl" yaml:"imageUrl"`
	Rating      float64            `gorm:"default:0" json:"rating" yaml:"rating"`
	Difficulty  ExerciseDifficulty `gorm:"size:20;default:intermediate" json:"difficulty" yaml:"difficulty"`
	Type        ExerciseType       `gorm:"size:20;default:strength" json:"type" yaml:"type"`
}
