package models

// GlobalState is the singleton application configuration. When
// IsManualOverride is false the quiz follows the automatic opening window;
// when true, IsQuizOpen decides alone.
type GlobalState struct {
	IsManualOverride bool `json:"isManualOverride"`
	IsQuizOpen       bool `json:"isQuizOpen"`
}

// GlobalStateKey is the key of the single logical global_state row.
const GlobalStateKey = "config"

// GlobalStateRow is the persisted form of GlobalState.
type GlobalStateRow struct {
	Key   string      `gorm:"primaryKey;type:varchar(20)"`
	Value GlobalState `gorm:"serializer:json;type:jsonb"`
}

func (GlobalStateRow) TableName() string {
	return "global_state"
}

// DefaultGlobalState is what readers observe before the state was ever saved.
func DefaultGlobalState() GlobalState {
	return GlobalState{IsManualOverride: false, IsQuizOpen: false}
}
