package models

// AvailabilityWindow is one recurring weekly open-time range for a provider.
// Weekday follows time.Weekday numbering (0 = Sunday .. 6 = Saturday).
// A provider may hold several windows on the same weekday; the engine does
// not require them to be disjoint and dedupes at slot enumeration instead.
type AvailabilityWindow struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"provider_id" json:"provider_id"`
	Weekday    int    `bson:"weekday" json:"weekday"`
	StartTime  string `bson:"start_time" json:"start_time"` // "09:00"
	EndTime    string `bson:"end_time" json:"end_time"`     // "14:00"
}
