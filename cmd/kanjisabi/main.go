package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/ironsheep/kanjisabi/internal/cli"
	"github.com/ironsheep/kanjisabi/internal/server"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Fatal("Error loading .env file")
	}

	if Version != "dev" {
		server.Version = Version
	}
	cli.BuildTime = BuildTime
	cli.GitCommit = GitCommit
	cli.RootCmd.Version = server.Version

	if err := fang.Execute(context.Background(), cli.RootCmd); err != nil {
		os.Exit(1)
	}
}
