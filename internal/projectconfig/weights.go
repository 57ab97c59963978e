package projectconfig

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/skilljudge/verdict/internal/models"
	"gopkg.in/yaml.v3"
)

// weightDocument is the shape of a weight configuration file. Only
// scoring.dimensions is read; everything else in the document is ignored.
type weightDocument struct {
	Scoring struct {
		Dimensions map[string]float64 `mapstructure:"dimensions"`
	} `mapstructure:"scoring"`
}

// ReadWeights reads the weight overrides from a JSON or YAML document at path.
func ReadWeights(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weight config: %w", err)
	}
	return ParseWeights(data)
}

// ParseWeights decodes the scoring.dimensions mapping from a weight document.
// Numeric strings are accepted; any other non-numeric weight is an error.
func ParseWeights(data []byte) (map[string]float64, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing weight config: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var doc weightDocument
	if err := decodeWeights(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding weight config: %w", err)
	}
	return doc.Scoring.Dimensions, nil
}

// decodeWeights decodes input into result, converting numeric strings.
func decodeWeights(input, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("creating weight decoder: %w", err)
	}
	return decoder.Decode(input)
}

// MergeWeights returns base with the known, in-range entries of overrides
// applied. The second return value lists the keys that were ignored.
func MergeWeights(base models.Weights, overrides map[string]float64) (models.Weights, []string) {
	merged := base.Clone()
	var ignored []string
	for name, w := range overrides {
		dim, known := models.ParseDimension(name)
		if !known || w < 0 || w > 1 {
			ignored = append(ignored, name)
			continue
		}
		merged[dim] = w
	}
	sort.Strings(ignored)
	return merged, ignored
}
