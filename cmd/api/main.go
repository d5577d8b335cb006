package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	v1 "go-collab/cmd/api/router/v1"
	"go-collab/internal/infrastructure/auth"
	cacheAdapter "go-collab/internal/infrastructure/cache/adapter"
	"go-collab/internal/infrastructure/database"
	queueAdapter "go-collab/internal/infrastructure/queue/adapter"
	"go-collab/internal/infrastructure/realtime"
	"go-collab/internal/pkg/collab/application/task"
	"go-collab/internal/pkg/collab/application/usecase"
	repoAdapter "go-collab/internal/pkg/collab/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(rootCtx, 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	guard, err := auth.NewGuardFromEnv()
	if err != nil {
		log.Fatalf("failed to configure session guard: %v", err)
	}

	rtCfg := realtime.ConfigFromEnv()
	hub := realtime.NewHub()
	defer hub.Close()

	// The fan-out engine shared by the in-process notifier and the worker.
	users := repoAdapter.NewPgUserRepository(pool)
	teams := repoAdapter.NewPgTeamRepository(pool)
	notifications := repoAdapter.NewPgNotificationRepository(pool)

	var unread usecase.UnreadCounter
	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		log.Printf("Warning: unread cache disabled: %v", err)
	} else {
		defer cache.Close()
		unread = cacheAdapter.NewUnreadCounts(cache)
	}

	notifyUC := usecase.NewNotifyUseCase(users, teams, notifications, hub, unread)

	// Prefer queue-backed fan-out when Redis is reachable; fall back to the
	// in-process notifier otherwise so mutations still fan out.
	var notifier usecase.Notifier = usecase.NewAsyncNotifier(notifyUC)
	if client, err := queueAdapter.NewAsynqClientFromEnv(); err != nil {
		log.Printf("Warning: queue disabled, using in-process fan-out: %v", err)
	} else {
		defer client.Close()
		notifier = task.NewQueueNotifier(client, usecase.NewAsyncNotifier(notifyUC))

		srv, err := queueAdapter.NewAsynqServer()
		if err != nil {
			log.Fatalf("failed to configure worker: %v", err)
		}
		task.RegisterFanoutTask(srv, notifyUC)
		task.RegisterRetentionSweepTask(srv, client, notifications)
		go func() {
			if err := srv.Run(rootCtx); err != nil {
				log.Printf("worker stopped: %v", err)
			}
		}()
		task.EnqueueRetentionSweep(rootCtx, client, time.Minute)
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, notifier, unread, hub, guard, rtCfg)

	// Start HTTP server (blocks until shutdown)
	_ = r.Run()
}
