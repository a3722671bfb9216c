package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffer_OwnedBy(t *testing.T) {
	o := &Offer{CreatedBy: "emp-1"}
	assert.True(t, o.OwnedBy("emp-1"))
	assert.False(t, o.OwnedBy("emp-2"))
	assert.False(t, (&Offer{}).OwnedBy(""))
}

func TestOffer_IsSavedOmittedWhenUnset(t *testing.T) {
	raw, err := json.Marshal(Offer{ID: "o1", Title: "Go developer"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "isSaved")

	saved := true
	raw, err = json.Marshal(Offer{ID: "o1", IsSaved: &saved})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"isSaved":true`)
}

func TestUser_Public(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	u := &User{
		ID:          "u1",
		Email:       "jane@example.com",
		FirstName:   "Jane",
		Role:        RoleJobseeker,
		SavedOffers: []string{"o1"},
		UpdatedAt:   now,
		JobseekerProfile: &JobseekerProfile{
			Stack:      []string{"Go"},
			OpenToWork: true,
		},
	}

	raw, err := json.Marshal(u.Public())
	require.NoError(t, err)
	body := string(raw)
	assert.NotContains(t, body, "jane@example.com")
	assert.NotContains(t, body, "savedOffers")
	assert.Contains(t, body, `"stack":["Go"]`)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleEmployer.Valid())
	assert.True(t, RoleJobseeker.Valid())
	assert.False(t, Role("admin").Valid())
}
