package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Raf4ok0/shareit/internal/api"
	"github.com/Raf4ok0/shareit/internal/booking"
	"github.com/Raf4ok0/shareit/internal/item"
	"github.com/Raf4ok0/shareit/internal/itemrequest"
	"github.com/Raf4ok0/shareit/internal/pkg/clock"
	"github.com/Raf4ok0/shareit/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Clock        clock.Clock
}

// Container holds the initialized components needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System()
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking module. Its repository feeds the item module's last/next
	// summary and comment checks; its collaborator interfaces are satisfied
	// by the item and user services below.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, userService, bookingRepo, clk)

	bookingService := booking.NewService(bookingRepo, itemService, userService, clk)

	// Item request module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService, itemRepo, clk)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{Router: router}
}
