package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/TBKaGOC/filmorate/internal/models"
	"github.com/TBKaGOC/filmorate/internal/storage"
)

var DB *gorm.DB

// Connect initializes the database connection, runs migrations and seeds
// the genre and MPA rating catalogs.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	// Run migrations
	err = DB.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.Genre{},
		&models.MpaRating{},
		&models.Director{},
		&models.Film{},
		&models.FilmLike{},
		&models.Review{},
		&models.ReviewReaction{},
		&models.FeedEvent{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully.")

	seedCatalogs()
}

// seedCatalogs inserts the fixed genre and MPA rating rows, skipping any
// that already exist.
func seedCatalogs() {
	genres := storage.DefaultGenres()
	if err := DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&genres).Error; err != nil {
		log.Fatalf("Failed to seed genres: %v", err)
	}
	ratings := storage.DefaultRatings()
	if err := DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&ratings).Error; err != nil {
		log.Fatalf("Failed to seed MPA ratings: %v", err)
	}
}
