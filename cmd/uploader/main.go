package main

import (
	"context"
	"fhirloader-service/cmd/uploader/commands"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		logrus.Errorln(err)
		os.Exit(1)
	}
}
