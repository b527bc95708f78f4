package models

// DayOccupancy maps each start time ("09:00") of a calendar date to the IDs
// of providers already booked at that exact time, mirroring what the booking
// calendar needs to grey out full slots.
type DayOccupancy struct {
	Date            string              `json:"date"`
	TotalTherapists int                 `json:"total_therapists"`
	Occupancy       map[string][]string `json:"occupancy"`
}
