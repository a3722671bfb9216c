package search

import "jobboard-api/internal/models"

// SavedSet is the set of record ids bookmarked by the caller.
type SavedSet map[string]struct{}

func NewSavedSet(ids []string) SavedSet {
	set := make(SavedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s SavedSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// MarkOffers sets IsSaved on every offer. A nil set leaves the field unset.
func MarkOffers(offers []models.Offer, saved SavedSet) {
	if saved == nil {
		return
	}
	for i := range offers {
		v := saved.Contains(offers[i].ID)
		offers[i].IsSaved = &v
	}
}

// MarkProfiles sets IsSaved on every profile. A nil set leaves the field unset.
func MarkProfiles(profiles []models.PublicProfile, saved SavedSet) {
	if saved == nil {
		return
	}
	for i := range profiles {
		v := saved.Contains(profiles[i].ID)
		profiles[i].IsSaved = &v
	}
}
