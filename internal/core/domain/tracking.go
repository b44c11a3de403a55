package domain

type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StageCurrent   StageStatus = "current"
	StagePending   StageStatus = "pending"
)

type TimelineStage struct {
	Name   string      `json:"name"`
	When   string      `json:"when"`
	Status StageStatus `json:"status"`
}
