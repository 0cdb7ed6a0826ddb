package main

import (
	"log"
	"net/http"
	"time"

	"github.com/avlok/vidfeed_server/internal/app"
	"github.com/avlok/vidfeed_server/internal/routes"
	"github.com/joho/godotenv"
)

const (
	PORT string = ":8080"
)

func main() {

	godotenv.Load()

	app, err := app.NewApplication()
	if err != nil {
		log.Fatal("Failed to start application:", err)
	}

	r := routes.SetupRoutes(app)

	defer app.RedisClient.Close()

	if err := app.Reconciler.Start(); err != nil {
		app.Logger.Fatal("Error starting counter reconciler", err)
	}
	defer app.Reconciler.Stop()

	server := &http.Server{
		Addr:         PORT,
		Handler:      r,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	app.Logger.Println("Server started on port", PORT)

	err = server.ListenAndServe()
	if err != nil {
		app.Logger.Fatal("Error starting server", err)
	}

}
