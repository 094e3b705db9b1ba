package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/order-fulfillment/internal/adapter/handler"
	"github.com/rl1809/order-fulfillment/internal/adapter/publisher"
	"github.com/rl1809/order-fulfillment/internal/adapter/storage"
	"github.com/rl1809/order-fulfillment/internal/config"
	"github.com/rl1809/order-fulfillment/internal/core/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Error("open mysql", "err", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping mysql", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to mysql")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, PoolSize: 100})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("ping redis", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to redis")

	orderRepo := storage.NewMySQLOrderRepository(db)
	goodsRepo := storage.NewMySQLGoodsRepository(db)
	balanceRepo := storage.NewMySQLBalanceRepository(db)
	addressRepo := storage.NewMySQLAddressRepository(db)
	goodsCache := storage.NewRedisGoodsCache(rdb)
	logisticsPublisher := publisher.NewRedisPublisher(rdb)

	goodsService := service.NewGoodsService(goodsRepo, goodsCache, logger)
	balanceService := service.NewBalanceService(balanceRepo, logger)
	addressService := service.NewAddressService(addressRepo, logger)
	orderService := service.NewOrderService(
		orderRepo, goodsService, balanceService, addressService,
		logisticsPublisher, cfg.LogisticsTopic, logger,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	httpHandler := handler.NewHTTPHandler(orderService, goodsService, balanceService, addressService, logger)
	httpHandler.Register(router)

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}

	rdb.Close()
	db.Close()
	logger.Info("connections closed")
}
