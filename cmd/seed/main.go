package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mazhets/internal/adapter/repository"
	"mazhets/pkg/config"
)

var (
	categories = []string{"Phones", "Laptops", "Tablets", "Accessories", "Gaming"}
	locations  = []string{"Harare", "Bulawayo", "Mutare", "Gweru", "Masvingo"}
	conditions = []string{"New", "Used", "Refurbished"}
	names      = []string{"Alice", "Bob", "Charlie", "David", "Eve", "Fiona", "George", "Hannah", "Ian", "Jane"}
)

// Seeds the hosted backend with demo profiles, listings and images.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	profiles := make([]repository.ProfileRow, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, repository.ProfileRow{
			ID:        uuid.New().String(),
			Name:      name,
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name),
		})
	}
	if err := db.Create(&profiles).Error; err != nil {
		log.Fatalf("Failed to insert profiles: %v", err)
	}
	log.Printf("Inserted %d profiles", len(profiles))

	listings := make([]repository.ListingRow, 0, 30)
	for i := 0; i < 30; i++ {
		profile := profiles[rand.Intn(len(profiles))]
		listings = append(listings, repository.ListingRow{
			ID:          uuid.New().String(),
			UserID:      profile.ID,
			Title:       fmt.Sprintf("%s Item %d", categories[rand.Intn(len(categories))], i+1),
			PriceCents:  int64(5000 + rand.Intn(195001)),
			Location:    locations[rand.Intn(len(locations))],
			Category:    categories[rand.Intn(len(categories))],
			Condition:   conditions[rand.Intn(len(conditions))],
			Description: fmt.Sprintf("Description for listing %d", i+1),
			CreatedAt:   time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour),
		})
	}
	if err := db.Create(&listings).Error; err != nil {
		log.Fatalf("Failed to insert listings: %v", err)
	}
	log.Printf("Inserted %d listings", len(listings))

	images := make([]repository.ListingImageRow, 0)
	for _, listing := range listings {
		count := 1 + rand.Intn(3)
		for i := 0; i < count; i++ {
			images = append(images, repository.ListingImageRow{
				ID:        uuid.New().String(),
				ListingID: listing.ID,
				URL:       fmt.Sprintf("https://via.placeholder.com/300x300.png?text=Listing+%s+%d", listing.ID[:8], i+1),
				SortIndex: i,
			})
		}
	}
	if err := db.Create(&images).Error; err != nil {
		log.Fatalf("Failed to insert listing images: %v", err)
	}
	log.Printf("Inserted %d listing images", len(images))

	log.Printf("Seeding complete")
}
