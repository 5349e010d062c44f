package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type rosterKey struct {
	athleteID, sportID, year int
}

type mockRosterRepo struct {
	entries map[rosterKey]models.RosterEntry
	nextID  int
	removed []int
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{entries: make(map[rosterKey]models.RosterEntry)}
}

func (m *mockRosterRepo) List(ctx context.Context, filter models.RosterFilter) ([]models.RosterEntry, error) {
	out := []models.RosterEntry{}
	for _, e := range m.entries {
		if filter.SportID != nil && e.SportID != *filter.SportID {
			continue
		}
		if filter.Year != nil && e.Year != *filter.Year {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockRosterRepo) FindByID(ctx context.Context, id int) (*models.RosterEntry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			entry := e
			return &entry, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockRosterRepo) Exists(ctx context.Context, athleteID, sportID, year int) (bool, error) {
	_, ok := m.entries[rosterKey{athleteID, sportID, year}]
	return ok, nil
}

func (m *mockRosterRepo) Create(ctx context.Context, entry *models.RosterEntry) error {
	m.nextID++
	entry.ID = m.nextID
	m.entries[rosterKey{entry.AthleteID, entry.SportID, entry.Year}] = *entry
	return nil
}

func (m *mockRosterRepo) Delete(ctx context.Context, id int) (bool, error) {
	for k, e := range m.entries {
		if e.ID == id {
			delete(m.entries, k)
			m.removed = append(m.removed, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRosterRepo) BulkDelete(ctx context.Context, sportID, year int, athleteIDs []int) (int, error) {
	removed := 0
	for _, athleteID := range athleteIDs {
		k := rosterKey{athleteID, sportID, year}
		if _, ok := m.entries[k]; ok {
			delete(m.entries, k)
			removed++
		}
	}
	return removed, nil
}

func (m *mockRosterRepo) Years(ctx context.Context) ([]int, error) {
	return []int{}, nil
}

func TestRosterBulkAddReturnsFullRoster(t *testing.T) {
	repo := newMockRosterRepo()
	svc := NewRosterService(repo, validator.New(), zap.NewNop())

	_, err := svc.Add(context.Background(), AddRosterEntryRequest{AthleteID: 2, SportID: 1, Year: 2026})
	require.NoError(t, err)

	roster, err := svc.BulkAdd(context.Background(), BulkRosterRequest{SportID: 1, Year: 2026, AthleteIDs: []int{1, 2, 3}})
	require.NoError(t, err)
	// Athlete 2 was already rostered and is skipped on insert, but the
	// response is the whole roster for the sport and year.
	assert.Len(t, roster, 3)
	athleteIDs := map[int]bool{}
	for _, entry := range roster {
		athleteIDs[entry.AthleteID] = true
	}
	assert.True(t, athleteIDs[1])
	assert.True(t, athleteIDs[2])
	assert.True(t, athleteIDs[3])
	assert.Len(t, repo.entries, 3)
}

func TestRosterAddDuplicateConflicts(t *testing.T) {
	repo := newMockRosterRepo()
	svc := NewRosterService(repo, validator.New(), zap.NewNop())

	_, err := svc.Add(context.Background(), AddRosterEntryRequest{AthleteID: 2, SportID: 1, Year: 2026})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), AddRosterEntryRequest{AthleteID: 2, SportID: 1, Year: 2026})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestRosterBulkRemoveReportsCount(t *testing.T) {
	repo := newMockRosterRepo()
	svc := NewRosterService(repo, validator.New(), zap.NewNop())

	for _, id := range []int{1, 2} {
		_, err := svc.Add(context.Background(), AddRosterEntryRequest{AthleteID: id, SportID: 1, Year: 2026})
		require.NoError(t, err)
	}

	removed, err := svc.BulkRemove(context.Background(), BulkRosterRequest{SportID: 1, Year: 2026, AthleteIDs: []int{1, 2, 9}})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, repo.entries)
}

func TestRosterRemoveMissingEntry(t *testing.T) {
	svc := NewRosterService(newMockRosterRepo(), validator.New(), zap.NewNop())

	err := svc.Remove(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRosterExportRejectsUnknownFormat(t *testing.T) {
	svc := NewRosterService(newMockRosterRepo(), validator.New(), zap.NewNop())

	_, _, err := svc.Export(context.Background(), 1, 2026, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRosterExportCSV(t *testing.T) {
	repo := newMockRosterRepo()
	repo.entries[rosterKey{3, 1, 2026}] = models.RosterEntry{
		ID: 1, AthleteID: 3, AthleteFirstName: "Avery", AthleteLastName: "Brooks",
		AthleteGender: "F", AthleteGradYear: 2027, SportID: 1, SportName: "Cross Country", Year: 2026,
	}
	svc := NewRosterService(repo, validator.New(), zap.NewNop())

	payload, contentType, err := svc.Export(context.Background(), 1, 2026, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "Brooks")
}
