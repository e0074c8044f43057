// Package bootstrap seeds the driver catalog and a handful of demo rides
// so a fresh deployment has something to show. Seeding is optional, runs
// once at startup, and never touches non-empty tables.
package bootstrap

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rideconnect/rideconnect-api/internal/driver"
	"github.com/rideconnect/rideconnect-api/internal/logging"
	"github.com/rideconnect/rideconnect-api/internal/ride"
	"github.com/rideconnect/rideconnect-api/internal/user"
)

//go:embed drivers.json rides.json
var seedFS embed.FS

const (
	seedEmailDomain      = "seed.rideconnect"
	seedPassword         = "SeedAccount#123"
	seedSecurityQuestion = "What is your pet's name?"
	seedSecurityAnswer   = "fluffy"
)

var emailSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type seedRide struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Seats     int     `json:"seats"`
	TotalFare int     `json:"totalFare"`
	Note      *string `json:"note,omitempty"`
	PostedBy  string  `json:"postedBy"`
	Verified  bool    `json:"verified"`
	Status    string  `json:"status"`
}

// Seeder populates empty tables with demo data
type Seeder struct {
	users   *user.Repository
	rides   ride.Store
	drivers *driver.Repository
	logger  *logging.Logger
}

func NewSeeder(users *user.Repository, rides ride.Store, drivers *driver.Repository, logger *logging.Logger) *Seeder {
	return &Seeder{
		users:   users,
		rides:   rides,
		drivers: drivers,
		logger:  logger,
	}
}

// Run seeds drivers and rides independently; each is skipped when its
// table already has data
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedDrivers(ctx); err != nil {
		return fmt.Errorf("failed to seed drivers: %w", err)
	}
	if err := s.seedRides(ctx); err != nil {
		return fmt.Errorf("failed to seed rides: %w", err)
	}
	return nil
}

func (s *Seeder) seedDrivers(ctx context.Context) error {
	count, err := s.drivers.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := seedFS.ReadFile("drivers.json")
	if err != nil {
		return err
	}

	var drivers []driver.Driver
	if err := json.Unmarshal(data, &drivers); err != nil {
		return err
	}

	if err := s.drivers.InsertMany(ctx, drivers); err != nil {
		return err
	}

	s.logger.Info("seeded driver profiles", "count", len(drivers))
	return nil
}

func (s *Seeder) seedRides(ctx context.Context) error {
	count, err := s.rides.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := seedFS.ReadFile("rides.json")
	if err != nil {
		return err
	}

	var rides []seedRide
	if err := json.Unmarshal(data, &rides); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte(seedSecurityAnswer), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, seed := range rides {
		host, err := s.hostForPoster(ctx, seed.PostedBy, string(passwordHash), string(answerHash))
		if err != nil {
			return err
		}

		status := ride.Status(seed.Status)
		if status == "" {
			status = ride.StatusUpcoming
		}

		newRide := &ride.Ride{
			From:         seed.From,
			To:           seed.To,
			Date:         seed.Date,
			Time:         seed.Time,
			Seats:        seed.Seats,
			TotalFare:    seed.TotalFare,
			Note:         seed.Note,
			PostedBy:     seed.PostedBy,
			Verified:     seed.Verified,
			Status:       status,
			HostID:       host.ID,
			Participants: []ride.Participant{},
		}
		if err := s.rides.Insert(ctx, newRide); err != nil {
			return err
		}
	}

	s.logger.Info("seeded ride listings", "count", len(rides))
	return nil
}

// hostForPoster finds or creates the synthesized account that owns a
// seeded ride. One account is shared across all rides with the same
// poster name.
func (s *Seeder) hostForPoster(ctx context.Context, name, passwordHash, answerHash string) (*user.User, error) {
	email := posterEmail(name)

	host, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return host, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	return s.users.Create(ctx, name, email, passwordHash, seedSecurityQuestion, answerHash)
}

func posterEmail(name string) string {
	slug := emailSlugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), ".")
	slug = strings.Trim(slug, ".")
	return slug + "@" + seedEmailDomain
}
