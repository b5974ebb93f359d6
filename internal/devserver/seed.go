package devserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/carcli/internal/types"
	"gopkg.in/yaml.v3"
)

// SeedFile is the on-disk shape of a seed: {cars: [...]}
type SeedFile struct {
	Cars []types.CarRecord `json:"cars" yaml:"cars"`
}

// LoadSeed loads cars from a YAML or JSON file
func LoadSeed(path string) ([]types.CarRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("failed to parse YAML seed: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("failed to parse JSON seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed file format: %s (use .yaml, .yml, or .json)", ext)
	}

	seen := make(map[string]bool, len(seed.Cars))
	for i, car := range seed.Cars {
		if car.ID == "" {
			continue
		}
		if seen[car.ID] {
			return nil, fmt.Errorf("car %d: duplicate id %q", i, car.ID)
		}
		seen[car.ID] = true
	}

	return seed.Cars, nil
}

// DefaultSeed returns a small built-in inventory
func DefaultSeed() []types.CarRecord {
	return []types.CarRecord{
		{Make: "Ford", Model: "Focus", Size: "Compact", Style: "Hatchback", TransmissionType: "AUTOMATIC", Price: 17500, ReleaseDate: 2015},
		{Make: "Ford", Model: "F-150", Size: "Large", Style: "Pickup", TransmissionType: "AUTOMATIC", Price: 38900, ReleaseDate: 2019},
		{Make: "Honda", Model: "Civic", Size: "Compact", Style: "Sedan", TransmissionType: "MANUAL", Price: 18200, ReleaseDate: 2017},
		{Make: "Honda", Model: "Accord", Size: "Midsize", Style: "Sedan", TransmissionType: "AUTOMATIC", Price: 24800, ReleaseDate: 2018},
		{Make: "Audi", Model: "A4", Size: "Midsize", Style: "Sedan", TransmissionType: "AUTOMATED_MANUAL", Price: 36500, ReleaseDate: 2016},
		{Make: "BMW", Model: "X5", Size: "Midsize", Style: "4dr SUV", TransmissionType: "AUTOMATIC", Price: 58900, ReleaseDate: 2020},
		{Make: "Chevrolet", Model: "Malibu", Size: "Midsize", Style: "Sedan", TransmissionType: "AUTOMATIC", Price: 22100, ReleaseDate: 2016},
		{Make: "Mazda", Model: "MX-5 Miata", Size: "Compact", Style: "Convertible", TransmissionType: "MANUAL", Price: 26800, ReleaseDate: 2019},
		{Make: "Volkswagen", Model: "Golf", Size: "Compact", Style: "Hatchback", TransmissionType: "MANUAL", Price: 20900, ReleaseDate: 2017},
		{Make: "Nissan", Model: "Leaf", Size: "Compact", Style: "Hatchback", TransmissionType: "DIRECT_DRIVE", Price: 29990, ReleaseDate: 2018},
		{Make: "Subaru", Model: "Outback", Size: "Midsize", Style: "Wagon", TransmissionType: "AUTOMATIC", Price: 27600, ReleaseDate: 2019},
		{Make: "Hyundai", Model: "Elantra", Size: "Compact", Style: "Sedan", TransmissionType: "AUTOMATIC", Price: 17950, ReleaseDate: 2017},
	}
}
