package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed fixtures/dashboard.json
var dashboardFixture []byte

// FixtureLoader decodes a JSON dataset, by default the embedded dashboard sample.
type FixtureLoader struct {
	data           []byte
	pointsPerLevel int
}

// NewFixtureLoader returns a loader over the embedded sample data.
func NewFixtureLoader(pointsPerLevel int) *FixtureLoader {
	return &FixtureLoader{data: dashboardFixture, pointsPerLevel: pointsPerLevel}
}

// NewFixtureLoaderFromBytes returns a loader over caller-supplied JSON.
func NewFixtureLoaderFromBytes(data []byte, pointsPerLevel int) *FixtureLoader {
	return &FixtureLoader{data: data, pointsPerLevel: pointsPerLevel}
}

// Load decodes and validates the dataset.
func (l *FixtureLoader) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc document
	dec := json.NewDecoder(bytes.NewReader(l.data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return doc.build(l.pointsPerLevel)
}
