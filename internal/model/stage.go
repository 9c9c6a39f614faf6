package model

import "time"

// Stage statuses. Stages only ever move between these three values.
const (
	StagePending    = "pending"
	StageInProgress = "in_progress"
	StageCompleted  = "completed"
)

// DefaultStages is the production pipeline seeded for every new booking, in
// order.
var DefaultStages = []string{"Nagrania", "Montaż", "Korekcja kolorów", "Dostarczenie filmu"}

// Stage tracks one production step of a booking's film. The client portal
// shows the pipeline read-only; admins move stages between statuses.
type Stage struct {
	ID        uint64    `json:"id"`
	ClientID  string    `json:"clientId"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Position  int       `json:"position"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidStageStatus reports whether s is one of the three allowed statuses.
func ValidStageStatus(s string) bool {
	return s == StagePending || s == StageInProgress || s == StageCompleted
}
