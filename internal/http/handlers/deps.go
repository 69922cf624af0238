package handlers

import (
	"pricewatch/internal/repos"
	"pricewatch/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	HomeHandler  *HomeHandler
	TrackHandler *TrackHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	trackedRepo := repos.NewTrackedRepo(db)
	trackingSvc := services.NewTrackingService(trackedRepo)

	return &Deps{
		HomeHandler:  &HomeHandler{},
		TrackHandler: &TrackHandler{Tracking: trackingSvc},
	}
}
