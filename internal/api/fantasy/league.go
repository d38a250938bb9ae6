package fantasy

import (
	"context"

	"github.com/omarshaarawi/rosterbot/internal/api/espn"
	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/omarshaarawi/rosterbot/internal/planner"
)

// API is the league provider as the rest of the bot sees it: league
// metadata plus a per-week view of the managed team.
type API struct {
	espnAPI  *espn.API
	teamID   int
	poolSize int
}

func NewAPI(espnAPI *espn.API, teamID, poolSize int) *API {
	return &API{espnAPI: espnAPI, teamID: teamID, poolSize: poolSize}
}

func (a *API) GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	return a.espnAPI.GetLeagueMetadata(ctx)
}

// Team returns a fresh collaborator for the managed team in week.
func (a *API) Team(week int) planner.Team {
	return espn.NewTeam(a.espnAPI, a.teamID, week, a.poolSize)
}
