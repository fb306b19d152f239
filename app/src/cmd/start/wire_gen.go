package main

import (
	"io"

	"atm-service/app/src/core"
	"atm-service/app/src/domain"
	"atm-service/app/src/infra"
)

func initApplication(out io.Writer) (*application, func(), error) {
	cfg, logger := setupBase(out)

	recorder, cleanup, err := provideRecorder(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	board := provideStatusBoard()
	tower := setupTower(cfg, recorder, board, logger)
	fleet := provideFleet(cfg, logger)

	app := newApplication(cfg, logger, recorder, tower, fleet, board)
	return assembleApplication(app, cleanup)
}

func setupBase(out io.Writer) (infra.Config, *infra.Logger) {
	cfg := provideConfig()
	svcName := provideServiceName()
	log := provideLogger(out, svcName)
	return cfg, log
}

func setupTower(cfg infra.Config, recorder domain.FlightRecorder, board *core.StatusBoard, logger *infra.Logger) domain.Consumer {
	towerCfg := provideTowerConfig(cfg)
	return provideTower(towerCfg, recorder, board, logger)
}
