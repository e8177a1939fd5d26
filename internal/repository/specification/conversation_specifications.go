package specification

import "gorm.io/gorm"

// BySessionID filters conversation rows for one customer session.
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}
