package migration

import (
	"errors"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/pkg/logger"
	"gorm.io/gorm"
)

// Run applies the schema and seeds reference data. It is idempotent
// and safe to call on every startup.
func Run(db *gorm.DB) error {
	log := logger.Get()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Listing{},
		&domain.Favorite{},
		&domain.Message{},
		&domain.Review{},
		&domain.Badge{},
		&domain.UserBadge{},
		&domain.Report{},
		&domain.Subscription{},
		&domain.Transaction{},
		&domain.Notification{},
		&domain.ShortURL{},
	); err != nil {
		return err
	}

	if err := seedCategories(db); err != nil {
		return err
	}
	if err := seedBadges(db); err != nil {
		return err
	}

	log.Info().Msg("database migration completed")
	return nil
}

func seedCategories(db *gorm.DB) error {
	categories := []domain.Category{
		{Name: "Céréales", Slug: "cereales", Icon: "grain", SortOrder: 1},
		{Name: "Fruits et légumes", Slug: "fruits-legumes", Icon: "apple", SortOrder: 2},
		{Name: "Noix de cajou", Slug: "cajou", Icon: "nut", SortOrder: 3},
		{Name: "Bétail", Slug: "betail", Icon: "cow", SortOrder: 4},
		{Name: "Pêche", Slug: "peche", Icon: "fish", SortOrder: 5},
		{Name: "Intrants agricoles", Slug: "intrants", Icon: "seed", SortOrder: 6},
		{Name: "Matériel agricole", Slug: "materiel", Icon: "tractor", SortOrder: 7},
		{Name: "Services", Slug: "services", Icon: "handshake", SortOrder: 8},
	}

	for _, category := range categories {
		if err := upsertBySlug(db, category); err != nil {
			return err
		}
	}
	return nil
}

func upsertBySlug(db *gorm.DB, category domain.Category) error {
	var existing domain.Category
	err := db.Where("slug = ?", category.Slug).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&category).Error
}

func seedBadges(db *gorm.DB) error {
	badges := []domain.Badge{
		{Name: "Premier pas", Description: "Première annonce publiée", Icon: "sprout", Criterion: domain.CriterionListingsPosted, Threshold: 1},
		{Name: "Vendeur actif", Description: "10 annonces publiées", Icon: "store", Criterion: domain.CriterionListingsPosted, Threshold: 10},
		{Name: "Producteur confirmé", Description: "50 annonces publiées", Icon: "farm", Criterion: domain.CriterionListingsPosted, Threshold: 50},
		{Name: "Visible", Description: "100 vues cumulées", Icon: "eye", Criterion: domain.CriterionTotalViews, Threshold: 100},
		{Name: "Populaire", Description: "1000 vues cumulées", Icon: "star", Criterion: domain.CriterionTotalViews, Threshold: 1000},
		{Name: "Sollicité", Description: "10 contacts reçus", Icon: "mail", Criterion: domain.CriterionContactsReceived, Threshold: 10},
		{Name: "Incontournable", Description: "100 contacts reçus", Icon: "phone", Criterion: domain.CriterionContactsReceived, Threshold: 100},
		{Name: "Apprécié", Description: "5 avis cinq étoiles", Icon: "thumbs-up", Criterion: domain.CriterionFiveStarReviews, Threshold: 5},
		{Name: "Excellence", Description: "20 avis cinq étoiles", Icon: "trophy", Criterion: domain.CriterionFiveStarReviews, Threshold: 20},
	}

	for _, badge := range badges {
		var existing domain.Badge
		err := db.Where("criterion = ? AND threshold = ?", badge.Criterion, badge.Threshold).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&badge).Error; err != nil {
			return err
		}
	}
	return nil
}
