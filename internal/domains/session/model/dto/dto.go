package dto

import (
	"vista/internal/domains/session/model"
)

type NavigateRequest struct {
	Page string `json:"page" validate:"required"`
}

type DateRangeRequest struct {
	Preset    string `json:"preset"     validate:"omitempty,oneof=last_7_days last_30_days this_month last_month year_to_date"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
}

// ContextRequest sets transient flags. A nil field is left untouched, an empty string clears it.
type ContextRequest struct {
	ActiveThreadID   *string `json:"active_thread_id"  validate:"omitempty,uuid"`
	ViewProfileID    *string `json:"view_profile_id"   validate:"omitempty,uuid"`
	SelectedProperty *string `json:"selected_property" validate:"omitempty,max=100"`
}

type DateRangeResponse struct {
	Preset    string `json:"preset,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type StateResponse struct {
	Page             string            `json:"page"`
	ShowDateFilter   bool              `json:"show_date_filter"`
	DateRange        DateRangeResponse `json:"date_range"`
	ActiveThreadID   string            `json:"active_thread_id,omitempty"`
	ViewProfileID    string            `json:"view_profile_id,omitempty"`
	SelectedProperty string            `json:"selected_property,omitempty"`
}

func (r *StateResponse) FromModel(state model.State) {
	page, _ := model.Lookup(state.Page)

	r.Page = state.Page
	r.ShowDateFilter = page.DateFilter
	r.DateRange = DateRangeResponse{
		Preset:    state.Preset,
		StartDate: state.StartDate,
		EndDate:   state.EndDate,
	}
	r.ActiveThreadID = state.ActiveThreadID
	r.ViewProfileID = state.ViewProfileID
	r.SelectedProperty = state.SelectedProperty
}

type PageResponse struct {
	Key            string `json:"key"`
	Label          string `json:"label"`
	ShowDateFilter bool   `json:"show_date_filter"`
}

func (r *PageResponse) FromModel(page model.Page) {
	r.Key = page.Key
	r.Label = page.Label
	r.ShowDateFilter = page.DateFilter
}
