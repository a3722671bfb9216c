// pkg/fixtures/fixtures.go

// Package fixtures loads seed files: YAML documents listing offers and
// users in their JSON field names, used by the index manager and the
// end-to-end tests.
package fixtures

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jobboard-api/internal/models"
)

type Seed struct {
	Version string         `json:"version"`
	Offers  []models.Offer `json:"offers"`
	Users   []models.User  `json:"users"`
}

// LoadSeed reads and validates a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed. Keys follow the JSON names of the models,
// so the document goes through JSON on its way into the typed seed.
func ParseSeed(data []byte) (*Seed, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert seed: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seed.applyDefaults()
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

func (s *Seed) applyDefaults() {
	for i := range s.Offers {
		o := &s.Offers[i]
		if o.Source == "" {
			o.Source = models.SourceInternal
		}
		if o.WorkMode == "" {
			o.WorkMode = models.WorkModeUnspecified
		}
		if o.EmploymentType == "" {
			o.EmploymentType = models.EmploymentUnspecified
		}
		if o.UpdatedAt.IsZero() {
			o.UpdatedAt = o.CreatedAt
		}
	}
	for i := range s.Users {
		u := &s.Users[i]
		u.SavedOffersCount = len(u.SavedOffers)
		u.SavedJobseekersCount = len(u.SavedJobseekers)
		if u.UpdatedAt.IsZero() {
			u.UpdatedAt = u.CreatedAt
		}
	}
}

func (s *Seed) Validate() error {
	offerIDs := make(map[string]bool, len(s.Offers))
	for i, o := range s.Offers {
		if o.ID == "" {
			return fmt.Errorf("offer %d missing required field: id", i)
		}
		if offerIDs[o.ID] {
			return fmt.Errorf("duplicate offer id: %s", o.ID)
		}
		offerIDs[o.ID] = true
		if o.Title == "" {
			return fmt.Errorf("offer %s missing required field: title", o.ID)
		}
	}

	userIDs := make(map[string]bool, len(s.Users))
	for i, u := range s.Users {
		if u.ID == "" {
			return fmt.Errorf("user %d missing required field: id", i)
		}
		if userIDs[u.ID] {
			return fmt.Errorf("duplicate user id: %s", u.ID)
		}
		userIDs[u.ID] = true
		if !u.Role.Valid() {
			return fmt.Errorf("user %s has invalid role %q", u.ID, u.Role)
		}
	}
	return nil
}
