package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"lvestimate/collections"
	"lvestimate/config"
	"lvestimate/handlers"
	"lvestimate/services"
	"lvestimate/storage"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: cfg.DataDir,
	})

	app.RootCmd.AddCommand(newExportCommand(app, cfg))

	var ws *services.Workspace

	// Create the key-value collection and load the workspace on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		ws = services.NewWorkspace(storage.NewRecordKV(app), app.Logger(), cfg.Settings())
		if ws.Estimates.Restored() {
			log.Printf("Restored estimate from last session")
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		handlers.RegisterRoutes(se.Router, ws)

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
