package model

import (
	"strings"
	"time"

	"tourly/shared/failure"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "tours"
	EntityName = "tour"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldPrice       = "price"
	FieldDuration    = "duration"
	FieldImage       = "image"
	FieldType        = "type"
	FieldLocation    = "location"
	FieldSubImages   = "sub_images"
	FieldFeatures    = "features"
	FieldAvailable   = "available"
	FieldMaxCapacity = "max_capacity"
)

const (
	TypeRegular = "regular"
	TypeCombo   = "combo"

	MaxSubImages = 5
)

// Feature is one entry of a tour's ordered feature list.
type Feature struct {
	Text      string `json:"text"`
	Available bool   `json:"available"`
}

type Tour struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Duration    string          `json:"duration"`
	Image       string          `json:"image"`
	Type        string          `json:"type"`
	Location    string          `json:"location"`
	SubImages   []string        `json:"sub_images"`
	Features    []Feature       `json:"features"`
	Available   bool            `json:"available"`
	MaxCapacity int             `json:"max_capacity"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ValidateFeatures rejects blank labels and case-insensitive duplicates
// within a single feature list.
func ValidateFeatures(features []Feature) error {
	seen := make(map[string]struct{}, len(features))

	for _, feature := range features {
		text := strings.TrimSpace(feature.Text)
		if text == "" {
			return failure.BadRequestFromString("feature text must not be blank") // nolint:wrapcheck
		}

		key := strings.ToLower(text)
		if _, ok := seen[key]; ok {
			return failure.BadRequestFromString("duplicate feature: " + feature.Text) // nolint:wrapcheck
		}

		seen[key] = struct{}{}
	}

	return nil
}

// AddFeature appends a feature to the list after validating it against the
// existing entries on the same draft.
func AddFeature(features []Feature, feature Feature) ([]Feature, error) {
	if err := ValidateFeatures(append(append([]Feature{}, features...), feature)); err != nil {
		return features, err
	}

	return append(features, feature), nil
}
