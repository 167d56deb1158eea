package main

import (
	"storely-be/internal/cart"
	"storely-be/internal/config"
	"storely-be/internal/db"
	"storely-be/internal/event"
	"storely-be/internal/httpapi"
	"storely-be/internal/logger"
	"storely-be/internal/order"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	bus := event.NewBus()
	hub := event.NewHub()
	bus.Subscribe(hub.Broadcast)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartRepo, bus)

	router := httpapi.NewRouter(httpapi.Deps{
		DB:        database,
		JWTSecret: []byte(cfg.JWTSecret),
		OrderSvc:  orderSvc,
		CartSvc:   cartSvc,
		Hub:       hub,
	})

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
