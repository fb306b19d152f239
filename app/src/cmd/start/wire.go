//go:build wireinject

package main

import (
	"io"

	"github.com/google/wire"
)

func initApplication(out io.Writer) (*application, func(), error) {
	wire.Build(
		provideConfig,
		provideServiceName,
		provideLogger,
		provideStatusBoard,
		provideRecorder,
		provideTowerConfig,
		provideTower,
		provideFleet,
		newApplication,
		assembleApplication,
	)
	return nil, nil, nil
}
