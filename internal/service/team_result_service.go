package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/schoolyear"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type teamResultRepository interface {
	List(ctx context.Context, filter models.TeamMeetResultFilter) ([]models.TeamMeetResult, error)
	FindByID(ctx context.Context, id int) (*models.TeamMeetResult, error)
	ListForStandings(ctx context.Context, sportID, year int, gender string) ([]models.TeamMeetResult, error)
	DistinctTeams(ctx context.Context, sportID, year int) ([]string, error)
	Years(ctx context.Context) ([]int, error)
	Create(ctx context.Context, result *models.TeamMeetResult) error
	Update(ctx context.Context, result *models.TeamMeetResult) error
	SoftDelete(ctx context.Context, id int) (bool, error)
}

// TeamResultRequest holds payload for creating or updating a team result.
type TeamResultRequest struct {
	SportID         int       `json:"sport_id" validate:"required"`
	Year            int       `json:"year" validate:"required,min=1900,max=2200"`
	MeetDate        time.Time `json:"meet_date" validate:"required"`
	Gender          string    `json:"gender" validate:"required,oneof=M F"`
	HomeTeam        string    `json:"home_team" validate:"required"`
	AwayTeam        string    `json:"away_team" validate:"required"`
	HomeScore       int       `json:"home_score" validate:"min=0"`
	AwayScore       int       `json:"away_score" validate:"min=0"`
	IsDivisionMatch bool      `json:"is_division_match"`
	Notes           *string   `json:"notes"`
}

type sportLookup interface {
	FindByID(ctx context.Context, id int) (*models.Sport, error)
}

// TeamResultService handles team meet result and standings use-cases.
type TeamResultService struct {
	repo      teamResultRepository
	sports    sportLookup
	cache     cacheStore
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeamResultService constructs the team result service.
func NewTeamResultService(repo teamResultRepository, sports sportLookup, cache cacheStore, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *TeamResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &TeamResultService{repo: repo, sports: sports, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns team results matching the filter.
func (s *TeamResultService) List(ctx context.Context, filter models.TeamMeetResultFilter) ([]models.TeamMeetResult, error) {
	results, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list team results")
	}
	return results, nil
}

// Get returns one team result.
func (s *TeamResultService) Get(ctx context.Context, id int) (*models.TeamMeetResult, error) {
	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load team result")
	}
	return result, nil
}

// Standings aggregates the season table for one sport, school year and
// gender. Cached because it backs the public standings page and is
// recomputed from scratch on every request otherwise.
func (s *TeamResultService) Standings(ctx context.Context, sportID, year int, gender string) (*models.Standings, error) {
	if gender != "M" && gender != "F" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "gender must be M or F")
	}

	key := fmt.Sprintf("standings:%d:%d:%s", sportID, year, gender)
	if s.cache != nil {
		var cached models.Standings
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	results, err := s.repo.ListForStandings(ctx, sportID, year, gender)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load standings results")
	}

	standings := aggregateStandings(sportID, year, gender, results)

	// An empty season has no result row to take the sport name from.
	if standings.SportName == "" && s.sports != nil {
		sport, err := s.sports.FindByID(ctx, sportID)
		if err != nil {
			if err != sql.ErrNoRows {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sport for standings")
			}
		} else {
			standings.SportName = sport.Name
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, standings, s.cacheTTL); err != nil {
			s.logger.Warn("standings cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return standings, nil
}

// Teams returns the distinct team names seen in one sport's season.
func (s *TeamResultService) Teams(ctx context.Context, sportID, year int) ([]string, error) {
	teams, err := s.repo.DistinctTeams(ctx, sportID, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teams")
	}
	return teams, nil
}

// Years returns the school years with team results, current year always
// included.
func (s *TeamResultService) Years(ctx context.Context) ([]int, error) {
	years, err := s.repo.Years(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list team result years")
	}
	return withUpcomingYears(years, schoolyear.Current(), false), nil
}

// Create registers a new team result and drops the affected standings
// from cache.
func (s *TeamResultService) Create(ctx context.Context, req TeamResultRequest) (*models.TeamMeetResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid team result payload")
	}
	result := &models.TeamMeetResult{
		SportID:         req.SportID,
		Year:            req.Year,
		MeetDate:        req.MeetDate,
		Gender:          req.Gender,
		HomeTeam:        req.HomeTeam,
		AwayTeam:        req.AwayTeam,
		HomeScore:       req.HomeScore,
		AwayScore:       req.AwayScore,
		IsDivisionMatch: req.IsDivisionMatch,
		Notes:           req.Notes,
	}
	if err := s.repo.Create(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create team result")
	}
	s.invalidateStandings(ctx)
	return result, nil
}

// Update modifies an existing team result and drops standings from cache.
func (s *TeamResultService) Update(ctx context.Context, id int, req TeamResultRequest) (*models.TeamMeetResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid team result payload")
	}
	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load team result")
	}
	result.SportID = req.SportID
	result.Year = req.Year
	result.MeetDate = req.MeetDate
	result.Gender = req.Gender
	result.HomeTeam = req.HomeTeam
	result.AwayTeam = req.AwayTeam
	result.HomeScore = req.HomeScore
	result.AwayScore = req.AwayScore
	result.IsDivisionMatch = req.IsDivisionMatch
	result.Notes = req.Notes
	if err := s.repo.Update(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update team result")
	}
	s.invalidateStandings(ctx)
	return result, nil
}

// Delete marks a team result inactive and drops standings from cache.
func (s *TeamResultService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete team result")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "team result not found")
	}
	s.invalidateStandings(ctx)
	return nil
}

func (s *TeamResultService) invalidateStandings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "standings:*"); err != nil {
		s.logger.Warn("standings cache invalidation failed", zap.Error(err))
	}
}

// aggregateStandings folds a season of head-to-head results into per-team
// win/loss tallies. A tied score credits neither side. Division counters
// move in lock-step with the overall ones for division matches.
func aggregateStandings(sportID, year int, gender string, results []models.TeamMeetResult) *models.Standings {
	type tally struct {
		wins, losses       int
		divWins, divLosses int
	}
	tallies := make(map[string]*tally)
	sportName := ""

	get := func(name string) *tally {
		t, ok := tallies[name]
		if !ok {
			t = &tally{}
			tallies[name] = t
		}
		return t
	}

	for _, r := range results {
		if sportName == "" {
			sportName = r.SportName
		}
		home := get(r.HomeTeam)
		away := get(r.AwayTeam)
		if r.HomeScore == r.AwayScore {
			continue
		}
		winner, loser := home, away
		if r.AwayScore > r.HomeScore {
			winner, loser = away, home
		}
		winner.wins++
		loser.losses++
		if r.IsDivisionMatch {
			winner.divWins++
			loser.divLosses++
		}
	}

	rows := make([]models.TeamStanding, 0, len(tallies))
	for name, t := range tallies {
		rows = append(rows, models.TeamStanding{
			TeamName:       name,
			OverallWins:    t.wins,
			OverallLosses:  t.losses,
			DivisionWins:   t.divWins,
			DivisionLosses: t.divLosses,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OverallWins != rows[j].OverallWins {
			return rows[i].OverallWins > rows[j].OverallWins
		}
		if rows[i].OverallLosses != rows[j].OverallLosses {
			return rows[i].OverallLosses < rows[j].OverallLosses
		}
		return rows[i].TeamName < rows[j].TeamName
	})

	return &models.Standings{
		SportID:   sportID,
		SportName: sportName,
		Year:      year,
		Gender:    gender,
		Standings: rows,
	}
}
