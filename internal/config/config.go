package config

import (
	"flag"
	"log"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddr              string `env:"RUN_ADDRESS"`
	DBUri                string `env:"DATABASE_URI"`
	GatewayAddr          string `env:"PAYMENT_GATEWAY_ADDRESS"`
	ReturnURL            string `env:"PAYMENT_RETURN_URL"`
	NotifyChannel        string `env:"NOTIFY_CHANNEL"`
	LogLevel             string `env:"LOG_LEVEL"`
	ReconcileAttempts    int    `env:"RECONCILE_ATTEMPTS"`
	ReconcileIntervalSec int    `env:"RECONCILE_INTERVAL_SEC"`
}

func (c *Config) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileIntervalSec) * time.Second
}

func ParseCfg() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	var cfg Config
	flag.StringVar(&cfg.RunAddr, "a", "localhost:8080", "run address")
	flag.StringVar(&cfg.DBUri, "d", "", "database uri")
	flag.StringVar(&cfg.GatewayAddr, "g", "", "payment gateway address")
	flag.StringVar(&cfg.ReturnURL, "u", "http://localhost:3000/order-success", "payment return url")
	flag.StringVar(&cfg.NotifyChannel, "n", "tastebite_events", "notification channel")
	flag.StringVar(&cfg.LogLevel, "l", "info", "log level")
	flag.IntVar(&cfg.ReconcileAttempts, "r", 5, "max reconcile attempts per payment session")
	flag.IntVar(&cfg.ReconcileIntervalSec, "i", 2, "seconds between reconcile attempts")
	flag.Parse()

	if err := env.Parse(&cfg); err != nil {
		log.Printf("error occured parsing env variables: %v", err)
	}

	log.Println("Running with:")
	log.Printf("RunAddr: %s", cfg.RunAddr)
	log.Printf("DBUri: %s", cfg.DBUri)
	log.Printf("GatewayAddr: %s", cfg.GatewayAddr)
	log.Printf("Reconcile: %d attempts every %s", cfg.ReconcileAttempts, cfg.ReconcileInterval())

	return &cfg
}
