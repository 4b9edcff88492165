package main

import (
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"go-aware/config"
	"go-aware/cronjobs"
	"go-aware/dashboard"
	"go-aware/db"
	"go-aware/predict"
	"go-aware/routes"
	"go-aware/sensors"
)

func main() {
	cfg := config.New()

	if cfg.OpenAIAPIKey != "" {
		fmt.Println("OPENAI_API_KEY loaded")
	}

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	store := db.NewStore(firestoreClient)
	ctrl := dashboard.NewController(store, dashboard.Credentials{
		Username: cfg.DashboardUser,
		Password: cfg.DashboardPass,
	})

	predictor := predict.NewClient(cfg.ModelServiceURL)
	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)

	sim := sensors.NewSimulator(cfg.SensorDataFile, time.Duration(cfg.SensorIntervalMS)*time.Millisecond)
	grapher := sensors.NewGrapher(sim, cfg.GraphImageFile, time.Duration(cfg.GraphIntervalMS)*time.Millisecond)

	// Initialize cron jobs
	cronjobs.InitCronJobs(store, sim)

	r := routes.SetupRouter(routes.Deps{
		Store:      store,
		Controller: ctrl,
		Predictor:  predictor,
		OpenAI:     openaiClient,
		Simulator:  sim,
		Grapher:    grapher,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
