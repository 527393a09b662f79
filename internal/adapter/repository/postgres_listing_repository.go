package repository

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"mazhets/internal/domain/entity"
	"mazhets/internal/domain/repository"
	"mazhets/pkg/errors"
)

// Row shapes of the hosted data service. The seed tool migrates and fills
// these tables; the service itself only reads them.

type ProfileRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	AvatarURL string
}

func (ProfileRow) TableName() string { return "profiles" }

type ListingImageRow struct {
	ID        string `gorm:"primaryKey"`
	ListingID string `gorm:"index"`
	URL       string
	SortIndex int
}

func (ListingImageRow) TableName() string { return "listing_images" }

type ListingRow struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index"`
	Title       string
	PriceCents  int64
	Location    string
	Category    string
	Condition   string
	Description string
	CreatedAt   time.Time
	Images      []ListingImageRow `gorm:"foreignKey:ListingID"`
	Profile     *ProfileRow       `gorm:"foreignKey:ID;references:UserID"`
}

func (ListingRow) TableName() string { return "listings" }

// Migrate creates the remote tables. Only the seed tool calls this; the
// hosted service owns the schema in production.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ProfileRow{}, &ListingRow{}, &ListingImageRow{})
}

type postgresListingRepository struct {
	db *gorm.DB
}

func NewPostgresListingRepository(db *gorm.DB) repository.RemoteListingRepository {
	return &postgresListingRepository{db: db}
}

func (r *postgresListingRepository) List(ctx context.Context) ([]entity.Listing, error) {
	if r.db == nil {
		return nil, errors.Internal("Remote listing backend is not configured", nil)
	}

	var rows []ListingRow
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Profile").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Internal("Failed to fetch remote listings", err)
	}

	listings := make([]entity.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, toListing(row))
	}
	return listings, nil
}

func toListing(row ListingRow) entity.Listing {
	images := make([]entity.ListingImage, 0, len(row.Images))
	sort.Slice(row.Images, func(i, j int) bool {
		return row.Images[i].SortIndex < row.Images[j].SortIndex
	})
	for _, img := range row.Images {
		images = append(images, entity.ListingImage{URL: img.URL, SortIndex: img.SortIndex})
	}

	seller := entity.Seller{ID: row.UserID}
	if row.Profile != nil {
		seller.Name = row.Profile.Name
		seller.AvatarURL = row.Profile.AvatarURL
	}

	return entity.Listing{
		ID:          row.ID,
		Title:       row.Title,
		PriceCents:  row.PriceCents,
		Category:    row.Category,
		Condition:   row.Condition,
		Description: row.Description,
		Location:    row.Location,
		Images:      images,
		Seller:      seller,
		CreatedAt:   row.CreatedAt,
	}
}
