package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mazhets/internal/adapter/api"
	"mazhets/internal/adapter/api/handler"
	apimiddleware "mazhets/internal/adapter/api/middleware"
	"mazhets/internal/adapter/api/router"
	"mazhets/internal/adapter/repository"
	"mazhets/internal/infrastructure/kvstore"
	ws "mazhets/internal/infrastructure/websocket"
	"mazhets/internal/usecase"
	"mazhets/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	kv := kvstore.NewStoreFromAddr(cfg.RedisAddr, cfg.RedisPassword)
	defer kv.Close()

	// The remote backend is best-effort: when it is unreachable the
	// merged view degrades to the local cache instead of failing hard.
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Printf("Remote listing backend unavailable: %v", err)
			db = nil
		}
	} else {
		log.Printf("DATABASE_URL not set, serving local listings only")
	}

	localListingRepo := repository.NewKVListingRepository(kv)
	remoteListingRepo := repository.NewPostgresListingRepository(db)
	chatRepo := repository.NewKVChatRepository(kv)
	savedRepo := repository.NewKVSavedRepository(kv)
	sessionRepo := repository.NewKVSessionRepository(kv)

	wsManager := ws.NewManager()
	wsManager.Start()
	defer wsManager.Close()

	listingUseCase := usecase.NewListingUseCase(localListingRepo, remoteListingRepo)
	chatUseCase := usecase.NewChatUseCase(
		chatRepo,
		wsManager,
		time.Duration(cfg.ReplyDelayMin)*time.Millisecond,
		time.Duration(cfg.ReplyDelayMax)*time.Millisecond,
	)
	defer chatUseCase.Close()
	savedUseCase := usecase.NewSavedUseCase(savedRepo, listingUseCase, wsManager)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	sessionMiddleware := apimiddleware.NewSessionMiddleware(sessionRepo)

	router.SetupHealthRouter(e, handler.NewHealthHandler())
	router.SetupListingRouter(e, handler.NewListingHandler(listingUseCase), sessionMiddleware)
	router.SetupChatRouter(e, handler.NewChatHandler(chatUseCase), sessionMiddleware)
	router.SetupSavedRouter(e, handler.NewSavedHandler(savedUseCase), sessionMiddleware)
	router.SetupSessionRouter(e, handler.NewSessionHandler(sessionRepo))
	router.SetupWebSocketRouter(e, handler.NewWebSocketHandler(wsManager))

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
