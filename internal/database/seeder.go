// server/internal/database/seeder.go
package database

import (
	"context"
	"time"

	"ecofreight-api-server/internal/auth"
	"ecofreight-api-server/internal/logging"
	"ecofreight-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedManager creates the bootstrap manager account if it does not exist yet.
func SeedManager(db *mongo.Database) error {
	log := logging.Get()
	userCollection := db.Collection("users")
	managerEmail := "manager@ecofreight.io"

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": managerEmail})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Debug("Bootstrap manager already exists. Seeding skipped.")
		return nil
	}

	log.Info("Bootstrap manager not found. Seeding...")
	hashedPassword, err := auth.HashPassword("changeme-on-first-login")
	if err != nil {
		return err
	}

	now := time.Now()
	manager := models.User{
		Email:     managerEmail,
		Name:      "Fleet Manager",
		Password:  hashedPassword,
		Company:   "EcoFreight",
		Role:      models.RoleManager,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = userCollection.InsertOne(context.Background(), manager)
	if err != nil {
		return err
	}

	log.Info("Bootstrap manager seeded successfully.")
	return nil
}
