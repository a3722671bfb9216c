package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-api/internal/models"
)

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed("testdata/seed.yaml")
	require.NoError(t, err)

	assert.Equal(t, "1", seed.Version)
	require.Len(t, seed.Offers, 2)
	require.Len(t, seed.Users, 2)

	o1 := seed.Offers[0]
	assert.Equal(t, models.SourceInternal, o1.Source)
	assert.Equal(t, models.WorkModeRemote, o1.WorkMode)
	assert.Equal(t, []string{"go", "elasticsearch"}, o1.Skills)
	require.NotNil(t, o1.Salary)
	require.NotNil(t, o1.Salary.Min)
	assert.Equal(t, 4000.0, *o1.Salary.Min)
	require.NotNil(t, o1.ScrapedAt)
	assert.True(t, o1.ScrapedAt.Equal(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, o1.CreatedAt, o1.UpdatedAt)

	o2 := seed.Offers[1]
	assert.Equal(t, models.SourceInternshipsAPI, o2.Source)
	assert.Equal(t, models.WorkModeUnspecified, o2.WorkMode)
	assert.Equal(t, models.EmploymentUnspecified, o2.EmploymentType)

	js := seed.Users[1]
	assert.Equal(t, models.RoleJobseeker, js.Role)
	assert.Equal(t, 2, js.SavedOffersCount)
	require.NotNil(t, js.JobseekerProfile)
	assert.True(t, js.JobseekerProfile.OpenToWork)
	assert.Equal(t, 1, seed.Users[0].SavedJobseekersCount)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestParseSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad yaml", "offers: [", "parse seed"},
		{"wrong shape", "offers: {id: o1}", "decode seed"},
		{"offer without id", "offers:\n  - title: x\n", "missing required field: id"},
		{"offer without title", "offers:\n  - id: o1\n", "missing required field: title"},
		{"duplicate offer", "offers:\n  - {id: o1, title: a}\n  - {id: o1, title: b}\n", "duplicate offer id: o1"},
		{"bad role", "users:\n  - {id: u1, role: admin}\n", `invalid role "admin"`},
		{"duplicate user", "users:\n  - {id: u1, role: employer}\n  - {id: u1, role: employer}\n", "duplicate user id: u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
