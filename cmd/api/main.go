package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/abhijith3110/Learning-Management-System/internal/auth"
	"github.com/abhijith3110/Learning-Management-System/internal/config"
	"github.com/abhijith3110/Learning-Management-System/internal/database"
	"github.com/abhijith3110/Learning-Management-System/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	router := routes.SetupRouter(client, cfg, tokens)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	log.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
