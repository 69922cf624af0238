package services

import (
	"errors"

	"pricewatch/internal/domain"
	"pricewatch/internal/repos"
	"pricewatch/internal/validate"
)

var ErrURLRequired = errors.New("URL is required")

type TrackingService struct {
	Tracked *repos.TrackedRepo
}

func NewTrackingService(tracked *repos.TrackedRepo) *TrackingService {
	return &TrackingService{Tracked: tracked}
}

// Track records url for later monitoring. Blank input is ErrURLRequired and writes nothing.
func (s *TrackingService) Track(url string) (domain.TrackedProduct, error) {
	url, ok := validate.Required(url)
	if !ok {
		return domain.TrackedProduct{}, ErrURLRequired
	}
	return s.Tracked.Insert(url)
}
