package venues

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrSeatNotFound  = errors.New("seat not found")
)

type Repository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetAll(ctx context.Context) ([]Venue, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetSeats(ctx context.Context, venueID uuid.UUID) ([]Seat, error)
	GetAvailableSeats(ctx context.Context, venueID uuid.UUID) ([]Seat, error)
	GetSeatByIdentity(ctx context.Context, venueID uuid.UUID, section, row, seatNumber string) (*Seat, error)
	UpdateSeatStatus(ctx context.Context, venueID, seatID uuid.UUID, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, venue *Venue) error {
	if err := r.db.WithContext(ctx).Create(venue).Error; err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).Preload("Seats").First(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return &venue, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).Preload("Seats").Order("created_at DESC").Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Venue{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete venue: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}

func (r *repository) GetSeats(ctx context.Context, venueID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("section ASC, row ASC, seat_number ASC").
		Find(&seats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get seats: %w", err)
	}
	return seats, nil
}

func (r *repository) GetAvailableSeats(ctx context.Context, venueID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND status = ?", venueID, SeatStatusAvailable).
		Order("section ASC, row ASC, seat_number ASC").
		Find(&seats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get available seats: %w", err)
	}
	return seats, nil
}

func (r *repository) GetSeatByIdentity(ctx context.Context, venueID uuid.UUID, section, row, seatNumber string) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND section = ? AND row = ? AND seat_number = ?", venueID, section, row, seatNumber).
		First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}
	return &seat, nil
}

func (r *repository) UpdateSeatStatus(ctx context.Context, venueID, seatID uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id = ? AND venue_id = ?", seatID, venueID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update seat status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSeatNotFound
	}
	return nil
}
