package entities

import (
	"encoding/json"
	"time"
)

// Analysis entity types and analysis types.
const (
	AnalysisEntityHolder  = "holder"
	AnalysisEntityProject = "project"
	AnalysisEntityToken   = "token"

	AnalysisTypeHolderRisk   = "holder_risk"
	AnalysisTypeProjectRisk  = "project_risk"
	AnalysisTypeManipulation = "manipulation_report"
)

// Analysis is a write-once record of one analysis run. Result holds the
// JSON-serialized outcome; rows are never read back by the scoring logic.
type Analysis struct {
	ID           string          `db:"id" json:"id"`
	EntityType   string          `db:"entity_type" json:"entity_type"`
	EntityID     string          `db:"entity_id" json:"entity_id"`
	AnalysisType string          `db:"analysis_type" json:"analysis_type"`
	Result       json.RawMessage `db:"result" json:"result"`
	Confidence   int             `db:"confidence" json:"confidence"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
