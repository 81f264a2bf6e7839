package logging

import (
	"encoding/json"
	"os"
	"path/filepath"

	"galab/internal/ga"
	"galab/internal/storage"
)

// HallOfFameArtifact is the JSON layout of a saved hall of fame
type HallOfFameArtifact struct {
	RunID      string             `json:"run_id"`
	Label      string             `json:"label"`
	Generation int                `json:"generation"`
	Champions  []storage.Champion `json:"champions"`
}

// Champions converts the hall of fame into ranked storage records
func Champions(hof *ga.HallOfFame) []storage.Champion {
	out := make([]storage.Champion, hof.Len())
	for i, ind := range hof.Items() {
		out[i] = storage.Champion{
			Rank:    i + 1,
			Fitness: ind.Fitness,
			Genome:  ind.Genome,
		}
	}
	return out
}

// SaveHallOfFame saves the ranked hall of fame to a file
func SaveHallOfFame(path string, artifact HallOfFameArtifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonData, 0644)
}

// LoadHallOfFame loads a hall of fame saved by SaveHallOfFame
func LoadHallOfFame(path string) (HallOfFameArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HallOfFameArtifact{}, err
	}

	var saved HallOfFameArtifact
	if err := json.Unmarshal(data, &saved); err != nil {
		return HallOfFameArtifact{}, err
	}
	return saved, nil
}
