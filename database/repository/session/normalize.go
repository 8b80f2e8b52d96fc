// File: database/repository/session/normalize.go
package sessionRepo

import (
	"go.mongodb.org/mongo-driver/bson"

	"mindhaven/models"
)

// sessionDoc is the storage shape, canonical fields plus the legacy aliases
// older documents were written with. This is the only layer aware of those
// aliases; everything above sees the typed record.
type sessionDoc struct {
	models.TherapySession `bson:",inline"`

	LegacyStatus   string  `bson:"session_status,omitempty"`
	LegacyClientID string  `bson:"user_id,omitempty"`
	LegacyFee      float64 `bson:"price,omitempty"`
}

func (d *sessionDoc) toModel() models.TherapySession {
	s := d.TherapySession
	if s.Status == "" {
		s.Status = models.CoerceSessionStatus(d.LegacyStatus)
	} else {
		s.Status = models.CoerceSessionStatus(string(s.Status))
	}
	if s.ClientID == "" {
		s.ClientID = d.LegacyClientID
	}
	if s.SessionFee == 0 {
		s.SessionFee = d.LegacyFee
	}
	s.SessionType = models.CoerceSessionType(string(s.SessionType))
	if s.Duration == 0 {
		s.Duration = 50
	}
	return s
}

// statusFilter matches a status against both the canonical and legacy field.
func statusFilter(statuses ...models.SessionStatus) bson.M {
	vals := make(bson.A, len(statuses))
	for i, st := range statuses {
		vals[i] = string(st)
	}
	return bson.M{"$or": bson.A{
		bson.M{"status": bson.M{"$in": vals}},
		bson.M{"session_status": bson.M{"$in": vals}},
	}}
}
