package main

import (
	"log"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/worldtrends/explorer/pkg/cmd"
	"github.com/worldtrends/explorer/pkg/env/server"
)

func main() {
	se := server.NewServerEnv()
	if err := se.Populate(); err != nil {
		log.Fatalf("Unable to configure server: %s", err)
	}

	l, err := cmd.NewLogger(se.LogFile)
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()
	if err := cmd.Run(logger, se); err != nil {
		logger.Fatalf("Unable to start World Trends Explorer: %s", err)
	}
}
