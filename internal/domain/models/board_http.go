package models

// PanelRequest selects one board panel by its JSON key.
type PanelRequest struct {
	Panel string `param:"panel" json:"panel" validate:"required,oneof=prices sentiment predictions confidence statistics timeline retrain"`
}
