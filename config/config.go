package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port             int    `env:"PORT" envDefault:"8080"`
	ModelServiceURL  string `env:"MODEL_SERVICE_URL" envDefault:"http://127.0.0.1:8000"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	DashboardUser    string `env:"DASHBOARD_USER" envDefault:"official"`
	DashboardPass    string `env:"DASHBOARD_PASS" envDefault:"aware2024"`
	SensorDataFile   string `env:"SENSOR_DATA_FILE" envDefault:"sensor_live_data.csv"`
	GraphImageFile   string `env:"GRAPH_IMAGE_FILE" envDefault:"live_graph.png"`
	SensorIntervalMS int    `env:"SENSOR_INTERVAL_MS" envDefault:"2000"`
	GraphIntervalMS  int    `env:"GRAPH_INTERVAL_MS" envDefault:"3000"`
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Printf("[Env]: unable to load .env file: %v", loadErr)
	}

	var cfg Config
	if parseErr := env.Parse(&cfg); parseErr != nil {
		log.Printf("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return &cfg
}
