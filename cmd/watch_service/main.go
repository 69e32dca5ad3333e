package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"eduwatch_service/internal/watch/api/handlers"
	"eduwatch_service/internal/watch/api/router"
	"eduwatch_service/internal/watch/app"
	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/internal/watch/repository"
	"eduwatch_service/pkg/config"
	"eduwatch_service/pkg/database"
	"eduwatch_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.WatchService, config.EnvConfig.WatchServiceLogPath)
	cfg := config.LoadConfig[config.Watch](config.EnvConfig.WatchService, config.EnvConfig.WatchServiceYAMLPath)

	ctx := context.Background()

	// 1. Mongo (留言、提問、筆記、收藏清單)
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.MongoSQL.User, cfg.MongoSQL.Password, cfg.MongoSQL.Host, cfg.MongoSQL.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval),
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// 2. Redis (房間 Pub/Sub)
	masterName, addr, sentinels := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, addr, sentinels, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// 3. PostgreSQL
	pgURI := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pgConn := database.Connection{
		ConnectStr:    pgURI,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	}

	// pgxpool 給進度與檢舉，gorm 給影片
	pgPool, err := database.NewDatabaseConnection(pgConn)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect postgres err : %v", err))
	}
	defer pgPool.Close()

	gormDB, err := database.NewGormConnection(pgConn)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect postgres (gorm) err : %v", err))
	}

	// 4. Kafka (觀看進度事件)
	kafkaWriter, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect kafka err : %v", err))
	}
	defer kafkaWriter.Close()

	// 5. RabbitMQ (檢舉審核佇列)
	rabbitURI := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		cfg.Rabbit.User, cfg.Rabbit.Password, cfg.Rabbit.Host, cfg.Rabbit.Port)
	rabbitConn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    rabbitURI,
		RetryCount:    cfg.Rabbit.RetryCount,
		RetryInterval: time.Duration(cfg.Rabbit.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect rabbitmq err : %v", err))
	}
	defer rabbitConn.Close()

	rabbitChannel, err := database.GetRabbitMQChannelWithRetry(rabbitConn, cfg.Rabbit.RetryCount, time.Duration(cfg.Rabbit.RetryInterval))
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("get rabbitmq channel err : %v", err))
	}
	defer rabbitChannel.Close()

	if _, err := rabbitChannel.QueueDeclare(
		domain.ModerationQueueName,
		true,
		false,
		false,
		false,
		amqp.Table{},
	); err != nil {
		logger.Log.Fatal(fmt.Sprintf("declare moderation queue err : %v", err))
	}

	// 6. MinIO (影片代理來源)
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      cfg.MinIO.Endpoint,
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect minio err : %v", err))
	}

	// 7. 初始化 Repository
	videoRepo := repository.NewVideoRepo(gormDB)
	if err := videoRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal(fmt.Sprintf("video auto migrate err : %v", err))
	}
	viewRepo := repository.NewViewRepository(pgPool)
	if err := viewRepo.InitTable(ctx); err != nil {
		logger.Log.Fatal(fmt.Sprintf("view init table err : %v", err))
	}
	reportRepo := repository.NewReportRepository(pgPool)
	if err := reportRepo.InitTable(ctx); err != nil {
		logger.Log.Fatal(fmt.Sprintf("report init table err : %v", err))
	}
	commentRepo := repository.NewMongoCommentRepository(mongo.Database)
	questionRepo := repository.NewMongoQuestionRepository(mongo.Database)
	noteRepo := repository.NewMongoNoteRepository(mongo.Database)
	playlistRepo := repository.NewMongoPlaylistRepository(mongo.Database)
	roomPubSub := repository.NewRoomPubSub(redisClient)
	rabbitRepo := database.NewRabbitRepository(rabbitChannel)

	// 8. 初始化 UseCases
	registry := app.NewSessionRegistry()
	watchUC := app.NewWatchUseCase(videoRepo, viewRepo, commentRepo, questionRepo, noteRepo, playlistRepo, registry, kafkaWriter, cfg.Session)
	commentUC := app.NewCommentUseCase(commentRepo, roomPubSub, registry)
	questionUC := app.NewQuestionUseCase(questionRepo, roomPubSub)
	noteUC := app.NewNoteUseCase(noteRepo)
	reportUC := app.NewReportUseCase(reportRepo, rabbitRepo, registry, cfg.Session.ReportGrace())
	playlistUC := app.NewPlaylistUseCase(playlistRepo)

	// 9. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.WatchServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	watchHandler := handlers.NewWatchHandler(watchUC, minioClient)
	discussionHandler := handlers.NewDiscussionHandler(commentUC, questionUC, noteUC, reportUC, playlistUC)
	router.RegisterRoutes(r, watchHandler, discussionHandler, watchUC, roomPubSub)

	// Listen
	port := ":" + cfg.Port
	log.Printf("Watch Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
