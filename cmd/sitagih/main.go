package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/clock"
	"github.com/smartpemda/sitagih/internal/migration"
	"github.com/smartpemda/sitagih/internal/observability"
	"github.com/smartpemda/sitagih/internal/server"
	"github.com/smartpemda/sitagih/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
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
