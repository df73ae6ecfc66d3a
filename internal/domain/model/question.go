package model

import (
	"encoding/json"
	"time"
)

// StringList decodes from either a single JSON string or an array of
// strings. Historic clients send the question's topic both ways and the
// stored documents reflect that, so both shapes must keep working.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

// Question is a quiz question. Topics and VehicleType reference topic and
// vehicle type names by value; a dangling topic name is tolerated.
type Question struct {
	ID          string     `json:"id"`
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	Answer      string     `json:"answer"`
	Topics      StringList `json:"topics"`
	VehicleType string     `json:"vehicleType"`
	ImageURL    string     `json:"image"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
