package dto

import (
	analyticsDto "vista/internal/domains/analytics/model/dto"
	bookingDto "vista/internal/domains/booking/model/dto"
	roomDto "vista/internal/domains/room/model/dto"
	logDto "vista/internal/domains/shiftlog/model/dto"
)

const (
	SectionKPI          = "kpi_snapshot"
	SectionFrontDesk    = "front_desk"
	SectionHousekeeping = "housekeeping"
	SectionMaintenance  = "maintenance"
)

type MetricsResponse struct {
	CheckInsToday  int     `json:"check_ins_today"`
	CheckOutsToday int     `json:"check_outs_today"`
	RoomsAvailable int     `json:"rooms_available"`
	VacancyRate    float64 `json:"vacancy_rate"`
	UnreadLogs     int     `json:"unread_logs"`
}

// SectionResponse carries the role-specific block; only the fields of its Kind are set.
type SectionResponse struct {
	Kind       string                       `json:"kind"`
	KPIs       *analyticsDto.KPIResponse    `json:"kpis,omitempty"`
	Arrivals   []bookingDto.BookingResponse `json:"arrivals,omitempty"`
	Departures []bookingDto.BookingResponse `json:"departures,omitempty"`
	Rooms      []roomDto.RoomResponse       `json:"rooms,omitempty"`
}

type OverviewResponse struct {
	Role       string               `json:"role"`
	Metrics    MetricsResponse      `json:"metrics"`
	RecentLogs []logDto.LogResponse `json:"recent_logs,omitempty"`
	Section    *SectionResponse     `json:"section,omitempty"`
}
