package config

import (
	"log"

	"github.com/Adnan2208/CampusCommerce/models"
	"gorm.io/gorm"
)

func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.VerificationCode{},
		&models.Product{},
		&models.Order{},
		&models.Grievance{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully...")
	return nil
}

func ResetAndMigrate(db *gorm.DB) error {
	if err := db.Migrator().DropTable(allModels()...); err != nil {
		log.Printf("Failed to drop tables: %v", err)
		return err
	}

	log.Println("All tables dropped successfully.")

	if err := db.AutoMigrate(allModels()...); err != nil {
		log.Printf("Failed to auto migrate: %v", err)
		return err
	}

	SeedUsers(db)
	SeedProducts(db)

	log.Println("Database reset and migration completed successfully.")
	return nil
}
