package main

import (
	"atm-service/app/src/core"
	"atm-service/app/src/domain"
	"atm-service/app/src/infra"
)

type application struct {
	Config   infra.Config
	Logger   *infra.Logger
	Recorder domain.FlightRecorder
	Tower    domain.Consumer
	Fleet    []*core.Aircraft
	Board    *core.StatusBoard
}

func newApplication(cfg infra.Config, logger *infra.Logger, recorder domain.FlightRecorder, tower domain.Consumer, fleet []*core.Aircraft, board *core.StatusBoard) *application {
	return &application{
		Config:   cfg,
		Logger:   logger,
		Recorder: recorder,
		Tower:    tower,
		Fleet:    fleet,
		Board:    board,
	}
}

func assembleApplication(app *application, cleanup func()) (*application, func(), error) {
	if cleanup == nil {
		cleanup = func() {}
	}
	return app, cleanup, nil
}
