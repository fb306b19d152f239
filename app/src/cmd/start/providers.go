package main

import (
	"context"
	"io"
	"time"

	"atm-service/app/src/core"
	"atm-service/app/src/domain"
	"atm-service/app/src/flightlog"
	"atm-service/app/src/infra"
)

func provideConfig() infra.Config {
	return infra.LoadConfig()
}

func provideServiceName() string {
	return "atm-service"
}

func provideLogger(out io.Writer, serviceName string) *infra.Logger {
	return infra.NewLogger(out, serviceName)
}

func provideStatusBoard() *core.StatusBoard {
	return core.NewStatusBoard()
}

// provideRecorder opens the flight log. An unusable log destination is
// fatal: the orchestrator must not spawn any task without it.
func provideRecorder(cfg infra.Config, logger *infra.Logger) (domain.FlightRecorder, func(), error) {
	writer, err := flightlog.Open(flightlog.Config{
		Path:       cfg.LogPath,
		FlushEvery: cfg.LogFlushEvery,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := writer.Close(); err != nil {
			logger.Errorf(context.Background(), "flight log close: %v", err)
		}
	}
	return writer, cleanup, nil
}

func provideTowerConfig(cfg infra.Config) core.TowerConfig {
	return core.TowerConfig{
		AircraftCount: cfg.AircraftCount,
		PopTimeout:    time.Duration(cfg.PopTimeoutMillis) * time.Millisecond,
		ProgressEvery: cfg.ProgressEvery,
	}
}

func provideTower(towerCfg core.TowerConfig, recorder domain.FlightRecorder, board *core.StatusBoard, logger *infra.Logger) domain.Consumer {
	return core.NewTower(towerCfg, recorder, board, logger)
}

func provideFleet(cfg infra.Config, logger *infra.Logger) []*core.Aircraft {
	fleet := make([]*core.Aircraft, cfg.AircraftCount)
	for i := range fleet {
		fleet[i] = core.NewAircraft(core.AircraftConfig{
			ID:          i + 1,
			MinInterval: time.Duration(cfg.MinSendMillis) * time.Millisecond,
			MaxInterval: time.Duration(cfg.MaxSendMillis) * time.Millisecond,
		}, logger)
	}
	return fleet
}
