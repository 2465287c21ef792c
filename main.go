package main

import (
	"net/http"

	"food-order-service/config"
	"food-order-service/controllers"
	"food-order-service/database"
	"food-order-service/middlewares"
	"food-order-service/rabbitmq"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	if err := database.InitDB(cfg); err != nil {
		logrus.Fatalf("database initialization failed: %v", err)
	}
	defer database.CloseDB()

	// The broker is an optional side channel; without it every request
	// behaves identically, only the post-commit events are skipped.
	if cfg.RabbitMQURL != "" {
		rmq, err := rabbitmq.NewRabbitMQ(cfg)
		if err != nil {
			logrus.WithError(err).Warn("rabbitmq unavailable, order events disabled")
		} else {
			defer rmq.Close()
			if err := rmq.SetupQueues(); err != nil {
				logrus.WithError(err).Warn("rabbitmq queue setup failed, order events disabled")
			} else {
				controllers.SetRabbitMQ(rmq)
			}
		}
	}

	r := gin.Default()

	r.Use(cors.Default())
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/restaurants", controllers.ListRestaurants)
		api.GET("/menu/:restaurant_id", controllers.GetMenu)
		api.PUT("/menu/:item_id", controllers.UpdateMenuItem)
		api.DELETE("/menu/:item_id", controllers.DeleteMenuItem)
		api.POST("/register", controllers.Register)
		api.POST("/orders", controllers.CreateOrder)
		api.GET("/orders/:user_id", controllers.GetUserOrders)
		api.PUT("/orders/:order_id/status", controllers.UpdateOrderStatus)
		api.DELETE("/orders/:order_id", controllers.CancelOrder)
		api.GET("/analytics/dashboard", controllers.GetDashboardAnalytics)
	}

	port := ":" + cfg.ServerPort
	logrus.Infof("food ordering service starting on port %s", port)
	if err := r.Run(port); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
