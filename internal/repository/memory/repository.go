package memory

import (
	"sync"

	"github.com/omarshaarawi/rosterbot/internal/models"
)

type Repository struct {
	metadata  *models.LeagueMetadata
	lastCycle *models.CycleReport
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata = metadata
}

func (r *Repository) GetMetadata() *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metadata
}

// SaveCycle records report as the most recent executed cycle. Dry runs are
// not kept.
func (r *Repository) SaveCycle(report *models.CycleReport) {
	if report == nil || report.DryRun {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCycle = report
}

func (r *Repository) LastCycle() *models.CycleReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastCycle
}
