package domain

import "time"

// Passenger is a rider account. Passengers live in their own email namespace.
type Passenger struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Passenger) AccountID() int64           { return p.ID }
func (p *Passenger) AccountEmail() string       { return p.Email }
func (p *Passenger) CredentialHash() string     { return p.PasswordHash }
func (p *Passenger) SetCredentialHash(h string) { p.PasswordHash = h }

// PassengerPatch carries a partial profile update. Nil fields are left untouched.
// Password exists only so that callers sending one can be rejected explicitly.
type PassengerPatch struct {
	ID       int64
	Name     *string
	Email    *string
	Password *string
}
