package models

// Worker is an admin-managed staffing record. Workers can be drafted offline
// in the admin client; ClientRef is the stable client-generated identifier
// that survives the hand-off, so the server record can be reconciled with the
// local draft without field matching.
type Worker struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Email         string     `db:"email" json:"email"`
	Phone         string     `db:"phone" json:"phone"`
	Specialties   StringList `db:"specialties" json:"specialties"`
	Rating        float64    `db:"rating" json:"rating"` // 0..5
	CompletedJobs int        `db:"completed_jobs" json:"completedJobs"`
	Active        bool       `db:"active" json:"active"`
	ClientRef     string     `db:"client_ref" json:"clientRef,omitempty"`
}
