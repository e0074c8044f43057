package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database model for user accounts.
// Emails are stored lowercased; the unique index on email therefore
// enforces case-insensitive uniqueness.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                 uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name               string    `bun:"name,notnull"`
	Email              string    `bun:"email,notnull"`
	PasswordHash       string    `bun:"password_hash,notnull"`
	SecurityQuestion   string    `bun:"security_question,notnull"`
	SecurityAnswerHash string    `bun:"security_answer_hash,notnull"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:now()"`
	UpdatedAt          time.Time `bun:"updated_at,notnull,default:now()"`
}

// RideParticipant is one entry of a ride's embedded participant list.
// Participants are always read and written together with their ride,
// so they live in a JSONB column rather than a join table.
type RideParticipant struct {
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Ride is the database model for ride offerings
type Ride struct {
	bun.BaseModel `bun:"table:rides,alias:r"`

	ID           uuid.UUID         `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Origin       string            `bun:"origin,notnull"`
	Destination  string            `bun:"destination,notnull"`
	RideDate     string            `bun:"ride_date,notnull"`
	RideTime     string            `bun:"ride_time,notnull"`
	Seats        int               `bun:"seats,notnull"`
	TotalFare    int               `bun:"total_fare,notnull"`
	Note         *string           `bun:"note"`
	PostedBy     string            `bun:"posted_by,notnull"`
	Verified     bool              `bun:"verified,notnull,default:true"`
	Status       string            `bun:"status,notnull,default:'upcoming'"`
	HostID       uuid.UUID         `bun:"host_id,type:uuid,notnull"`
	Participants []RideParticipant `bun:"participants,type:jsonb,notnull,default:'[]'"`
	CreatedAt    time.Time         `bun:"created_at,notnull,default:now()"`
	UpdatedAt    time.Time         `bun:"updated_at,notnull,default:now()"`
}

// Driver is the database model for the read-only driver catalog
type Driver struct {
	bun.BaseModel `bun:"table:drivers,alias:d"`

	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name          string    `bun:"name,notnull"`
	Rating        float64   `bun:"rating,notnull"`
	TotalRides    int       `bun:"total_rides,notnull"`
	VehicleType   string    `bun:"vehicle_type,notnull"`
	VehicleNumber string    `bun:"vehicle_number,notnull"`
	Experience    string    `bun:"experience,notnull"`
	Phone         string    `bun:"phone,notnull"`
	Languages     []string  `bun:"languages,type:jsonb,notnull"`
	IsVerified    bool      `bun:"is_verified,notnull,default:true"`
	PricePerKm    int       `bun:"price_per_km,notnull"`
	Availability  string    `bun:"availability,notnull,default:'Available'"`
	Routes        []string  `bun:"routes,type:jsonb,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:now()"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:now()"`
}
