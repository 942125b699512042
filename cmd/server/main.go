package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/TBKaGOC/filmorate/internal/auth"
	"github.com/TBKaGOC/filmorate/internal/config"
	"github.com/TBKaGOC/filmorate/internal/database"
	"github.com/TBKaGOC/filmorate/internal/handler"
	"github.com/TBKaGOC/filmorate/internal/service"
	"github.com/TBKaGOC/filmorate/internal/storage"
	"github.com/TBKaGOC/filmorate/internal/storage/gormstore"
	"github.com/TBKaGOC/filmorate/internal/storage/memory"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "github.com/TBKaGOC/filmorate/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// stores bundles the storage implementations picked at startup.
type stores struct {
	users     storage.UserStorage
	films     storage.FilmStorage
	feed      storage.FeedStorage
	reviews   storage.ReviewStorage
	directors storage.DirectorStorage
	genres    storage.GenreStorage
	mpa       storage.MpaStorage
}

// buildStores selects the storage backend from configuration: "postgres"
// connects and migrates the database, anything else runs fully in memory.
func buildStores() stores {
	if config.AppConfig.Storage == "postgres" {
		database.Connect(config.AppConfig.DatabaseURL)
		return stores{
			users:     gormstore.NewUserStorage(database.DB),
			films:     gormstore.NewFilmStorage(database.DB),
			feed:      gormstore.NewFeedStorage(database.DB),
			reviews:   gormstore.NewReviewStorage(database.DB),
			directors: gormstore.NewDirectorStorage(database.DB),
			genres:    gormstore.NewGenreStorage(database.DB),
			mpa:       gormstore.NewMpaStorage(database.DB),
		}
	}

	log.Println("Using in-memory storage")
	return stores{
		users:     memory.NewUserStorage(),
		films:     memory.NewFilmStorage(),
		feed:      memory.NewFeedStorage(),
		reviews:   memory.NewReviewStorage(),
		directors: memory.NewDirectorStorage(),
		genres:    memory.NewGenreStorage(),
		mpa:       memory.NewMpaStorage(),
	}
}

// @title           Filmorate API
// @version         1.0
// @description     Social film catalogue: users, friendships, films, likes, reviews, feed and recommendations.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	st := buildStores()

	userService := service.NewUserService(st.users, st.films, st.feed)
	friendshipService := service.NewFriendshipService(st.users, st.feed)
	socialService := service.NewSocialService(friendshipService, st.users, st.feed)
	recommendationService := service.NewRecommendationService(st.users, st.films)
	filmService := service.NewFilmService(st.films, st.users, st.genres, st.mpa, st.directors, st.reviews, st.feed)
	reviewService := service.NewReviewService(st.reviews, st.films, st.users, st.feed)
	directorService := service.NewDirectorService(st.directors)
	catalogService := service.NewCatalogService(st.genres, st.mpa)

	authHandler := handler.NewAuthHandler(userService, st.users)
	userHandler := handler.NewUserHandler(userService, friendshipService, socialService, recommendationService)
	filmHandler := handler.NewFilmHandler(filmService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	directorHandler := handler.NewDirectorHandler(directorService, filmService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.OptionalAuthMiddleware())
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// User routes
		userRoutes := apiV1.Group("/users")
		{
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.PUT("", userHandler.UpdateUser)
			userRoutes.GET("/:id", userHandler.GetUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)

			// Friendship routes
			userRoutes.PUT("/:id/friends/:friendId", userHandler.AddFriend)
			userRoutes.DELETE("/:id/friends/:friendId", userHandler.RemoveFriend)
			userRoutes.GET("/:id/friends", userHandler.GetFriends)
			userRoutes.GET("/:id/friends/common/:otherId", userHandler.GetMutualFriends)

			userRoutes.GET("/:id/feed", userHandler.GetFeed)
			userRoutes.GET("/:id/recommendations", userHandler.GetRecommendations)
		}

		// Film routes
		filmRoutes := apiV1.Group("/films")
		{
			filmRoutes.GET("", filmHandler.GetFilms)
			filmRoutes.POST("", filmHandler.CreateFilm)
			filmRoutes.PUT("", filmHandler.UpdateFilm)
			filmRoutes.GET("/popular", filmHandler.GetMostPopular) // Must be before /:id
			filmRoutes.GET("/common", filmHandler.GetCommonFilms)
			filmRoutes.GET("/search", filmHandler.SearchFilms)
			filmRoutes.GET("/:id", filmHandler.GetFilm)
			filmRoutes.DELETE("/:id", filmHandler.DeleteFilm)
			filmRoutes.PUT("/:id/like/:userId", filmHandler.LikeFilm)
			filmRoutes.DELETE("/:id/like/:userId", filmHandler.UnlikeFilm)
		}

		// Review routes
		reviewRoutes := apiV1.Group("/reviews")
		{
			reviewRoutes.GET("", reviewHandler.GetReviews)
			reviewRoutes.POST("", reviewHandler.CreateReview)
			reviewRoutes.PUT("", reviewHandler.UpdateReview)
			reviewRoutes.GET("/:id", reviewHandler.GetReview)
			reviewRoutes.DELETE("/:id", reviewHandler.DeleteReview)
			reviewRoutes.PUT("/:id/like/:userId", reviewHandler.LikeReview)
			reviewRoutes.DELETE("/:id/like/:userId", reviewHandler.RemoveReaction)
			reviewRoutes.PUT("/:id/dislike/:userId", reviewHandler.DislikeReview)
			reviewRoutes.DELETE("/:id/dislike/:userId", reviewHandler.RemoveReaction)
		}

		// Director routes
		directorRoutes := apiV1.Group("/directors")
		{
			directorRoutes.GET("", directorHandler.GetDirectors)
			directorRoutes.POST("", directorHandler.CreateDirector)
			directorRoutes.PUT("", directorHandler.UpdateDirector)
			directorRoutes.GET("/:id", directorHandler.GetDirector)
			directorRoutes.DELETE("/:id", directorHandler.DeleteDirector)
			directorRoutes.GET("/:id/films", directorHandler.GetDirectorFilms)
		}

		// Catalog routes
		apiV1.GET("/genres", catalogHandler.GetGenres)
		apiV1.GET("/genres/:id", catalogHandler.GetGenre)
		apiV1.GET("/mpa", catalogHandler.GetRatings)
		apiV1.GET("/mpa/:id", catalogHandler.GetRating)
	}

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(addr))
}
