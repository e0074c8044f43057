package driver

import (
	"time"

	"github.com/google/uuid"
)

// Driver is a read-only catalog entry for a verified campus driver
type Driver struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Rating        float64   `json:"rating"`
	TotalRides    int       `json:"totalRides"`
	VehicleType   string    `json:"vehicleType"`
	VehicleNumber string    `json:"vehicleNumber"`
	Experience    string    `json:"experience"`
	Phone         string    `json:"phone"`
	Languages     []string  `json:"languages"`
	IsVerified    bool      `json:"isVerified"`
	PricePerKm    int       `json:"pricePerKm"`
	Availability  string    `json:"availability"`
	Routes        []string  `json:"routes"`
	CreatedAt     time.Time `json:"-"`
}
