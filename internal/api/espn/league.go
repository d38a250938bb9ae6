package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/omarshaarawi/rosterbot/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, a.client.Config.LeagueID)
}

func (a *API) GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings",
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, nil, &espnResponse); err != nil {
		return nil, fmt.Errorf("fetching league metadata: %w", err)
	}

	metadata := &models.LeagueMetadata{
		LeagueID:             espnResponse.ID,
		Name:                 espnResponse.Settings.Name,
		CurrentWeek:          espnResponse.Status.CurrentMatchupPeriod,
		CurrentScoringPeriod: espnResponse.ScoringPeriodID,
		SeasonID:             espnResponse.SeasonID,
		FirstWeek:            espnResponse.Status.FirstScoringPeriod,
		LastWeek:             espnResponse.Status.FinalScoringPeriod,
		IsActive:             espnResponse.Status.IsActive,
		LastUpdated:          time.Now(),
	}

	return metadata, nil
}

// GetTeamRoster returns the roster entries of teamID for week.
func (a *API) GetTeamRoster(ctx context.Context, teamID, week int) ([]models.RosterEntry, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view":            "mRoster",
		"forTeamId":       fmt.Sprintf("%d", teamID),
		"scoringPeriodId": fmt.Sprintf("%d", week),
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching team roster: %w", err)
	}

	for _, team := range leagueResponse.Teams {
		if team.ID == teamID {
			return team.Roster.Entries, nil
		}
	}
	return nil, models.NewNotFoundError(fmt.Sprintf("team %d", teamID))
}

// GetFreeAgents lists available players for a lineup slot, most rostered
// first.
func (a *API) GetFreeAgents(ctx context.Context, slotID, week int, includeWaivers bool, limit int) ([]models.PlayerPoolEntry, error) {
	var response models.PlayerCardResponse

	statuses := []string{"FREEAGENT"}
	if includeWaivers {
		statuses = append(statuses, "WAIVERS")
	}

	filters := map[string]interface{}{
		"players": map[string]interface{}{
			"filterStatus":  map[string]interface{}{"value": statuses},
			"filterSlotIds": map[string]interface{}{"value": []int{slotID}},
			"sortPercOwned": map[string]interface{}{"sortPriority": 1, "sortAsc": false},
			"limit":         limit,
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}
	params := map[string]string{
		"view":            "kona_player_info",
		"scoringPeriodId": fmt.Sprintf("%d", week),
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, headers, &response); err != nil {
		return nil, fmt.Errorf("fetching free agents: %w", err)
	}

	return response.Players, nil
}

// SubmitTransaction executes a lineup move or an add/drop.
func (a *API) SubmitTransaction(ctx context.Context, tx models.TransactionRequest) error {
	endpoint := a.leagueEndpoint() + "/transactions/"

	var response models.TransactionResponse
	if err := a.client.Post(ctx, endpoint, tx, &response); err != nil {
		return fmt.Errorf("submitting %s transaction: %w", tx.Type, err)
	}
	return nil
}

// GetProSchedule maps pro team id to its bye week.
func (a *API) GetProSchedule(ctx context.Context) (map[int]int, error) {
	var scheduleResponse models.ProScheduleResponse

	endpoint := fmt.Sprintf("/seasons/%s", a.client.Config.Year)
	params := map[string]string{
		"view": "proTeamSchedules_wl",
	}

	if err := a.client.Get(ctx, endpoint, params, nil, &scheduleResponse); err != nil {
		return nil, fmt.Errorf("fetching pro schedule: %w", err)
	}

	byeWeeks := make(map[int]int)
	for _, team := range scheduleResponse.Settings.ProTeams {
		if team.ByeWeek > 0 {
			byeWeeks[team.ID] = team.ByeWeek
		}
	}

	return byeWeeks, nil
}
