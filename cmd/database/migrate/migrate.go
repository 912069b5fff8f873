package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recetario-backend/domain"
	"recetario-backend/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Role{}); err != nil {
		log.Fatalf("Error migrating role database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe ingredient database: %v", err)
		return err
	}

	if err := SeedRoles(db); err != nil {
		log.Fatalf("Error seeding roles: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

// SeedRoles inserts the fixed role reference rows, skipping ones that exist.
func SeedRoles(db *gorm.DB) error {
	roles := []entities.Role{
		{ID: domain.RoleUserID, Name: domain.RoleUser},
		{ID: domain.RoleAdminID, Name: domain.RoleAdmin},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}
