package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/santaradigital/backoffice/internal/config"
	"github.com/santaradigital/backoffice/internal/migration"
	"github.com/santaradigital/backoffice/internal/server"
	"github.com/santaradigital/backoffice/pkg/db"
	"github.com/santaradigital/backoffice/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
