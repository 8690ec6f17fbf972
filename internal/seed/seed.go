package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/PierrickDossin/AymanProject/internal/models"
)

//go:embed exercises.yaml
var exercisesYAML []byte

type catalog struct {
	Exercises []*models.Exercise `yaml:"exercises"`
}

// Exercises parses the embedded catalog. Each call returns fresh values, so
// callers may hand them straight to the ORM.
func Exercises() ([]*models.Exercise, error) {
	return parse(exercisesYAML)
}

func parse(data []byte) ([]*models.Exercise, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse exercise catalog: %w", err)
	}
	for i, e := range c.Exercises {
		if e.Name == "" || e.MuscleGroup == "" {
			return nil, fmt.Errorf("exercise catalog entry %d: name and muscleGroup are required", i)
		}
		if e.Difficulty == "" {
			e.Difficulty = models.DifficultyIntermediate
		}
		if e.Type == "" {
			e.Type = models.ExerciseStrength
		}
		if !e.Difficulty.Valid() || !e.Type.Valid() {
			return nil, fmt.Errorf("exercise catalog entry %q: bad difficulty or type", e.Name)
		}
	}
	return c.Exercises, nil
}
