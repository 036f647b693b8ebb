package models

// ImportMode selects how imported tasks are combined with existing ones.
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportAppend  ImportMode = "append"
)

// ExportData is the JSON document produced by export and accepted by import.
type ExportData struct {
	Tasks        []Task   `json:"tasks"`
	PrivateTasks []Task   `json:"privateTasks"`
	Settings     Settings `json:"settings"`
}
