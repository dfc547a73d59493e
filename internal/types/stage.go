package types

// Stage is the phase a project is currently in. Stages form a fixed linear
// order with one caller-chosen branch between director and copywriter.
type Stage string

const (
	StageMining     Stage = "mining"
	StageAnalysis   Stage = "analysis"
	StageDirector   Stage = "director"
	StageCopywriter Stage = "copywriter"
	StagePlanning   Stage = "planning"
	StageCompleted  Stage = "completed"
)

type OutputType string

const (
	OutputTypeDirector   OutputType = "director"
	OutputTypeCopywriter OutputType = "copywriter"
)

type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionParallel Direction = "parallel"
)
