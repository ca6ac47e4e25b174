package model

import (
	"slices"
	"time"
	"vista/shared/constant"
)

const EntityName = "session"

const (
	PageHome        = "home"
	PageLogs        = "logs"
	PageProfile     = "profile"
	PageTeam        = "team"
	PageMessaging   = "messaging"
	PageSettings    = "settings"
	PageDashboard   = "dashboard"
	PageOccupancy   = "occupancy"
	PageRevenue     = "revenue"
	PageFrontOffice = "front_office"
	PageRoomStatus  = "room_status"
	PageReports     = "reports"
)

// Page is one entry of the navigation registry. An empty Roles list means every role.
type Page struct {
	Key        string
	Label      string
	Roles      []string
	DateFilter bool
}

func (p Page) VisibleTo(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

// Pages is the navigation registry in menu order.
var Pages = []Page{
	{Key: PageHome, Label: "Home"},
	{Key: PageLogs, Label: "Shift Logs"},
	{Key: PageProfile, Label: "My Profile"},
	{Key: PageTeam, Label: "Team Directory"},
	{Key: PageMessaging, Label: "Messages"},
	{Key: PageSettings, Label: "Settings"},
	{Key: PageDashboard, Label: "Dashboard", DateFilter: true},
	{Key: PageOccupancy, Label: "Occupancy", DateFilter: true},
	{Key: PageRevenue, Label: "Revenue", DateFilter: true, Roles: []string{constant.RoleManager, constant.RoleSales}},
	{Key: PageFrontOffice, Label: "Front Office"},
	{Key: PageRoomStatus, Label: "Room Status"},
	{Key: PageReports, Label: "Reports", DateFilter: true, Roles: []string{constant.RoleManager, constant.RoleSales}},
}

func Lookup(key string) (Page, bool) {
	idx := slices.IndexFunc(Pages, func(p Page) bool { return p.Key == key })
	if idx < 0 {
		return Page{}, false
	}

	return Pages[idx], true
}

// State is the per-login navigation state kept in redis under the session id.
type State struct {
	SessionID        string    `json:"session_id"`
	UserID           string    `json:"user_id"`
	Page             string    `json:"page"`
	Preset           string    `json:"preset,omitempty"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	ActiveThreadID   string    `json:"active_thread_id,omitempty"`
	ViewProfileID    string    `json:"view_profile_id,omitempty"`
	SelectedProperty string    `json:"selected_property,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}
