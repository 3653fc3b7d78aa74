package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/agri-admin/internal/audit"
	"github.com/ariefcatur/agri-admin/internal/config"
	kafkax "github.com/ariefcatur/agri-admin/internal/kafka"
	"github.com/ariefcatur/agri-admin/internal/postgres"
	"github.com/ariefcatur/agri-admin/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	repo := &audit.Repo{DB: db}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &audit.Service{
		Repo:        repo,
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-audit",
	}

	// Consumer
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AuditGroup, audit.TopicAdminAudit, cfg.AuditWorkers)
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Printf("audit consumer started: group=%s topic=%s workers=%d", cfg.AuditGroup, audit.TopicAdminAudit, cfg.AuditWorkers)
		if err := cons.Start(ctx, svc.HandleRecordChanged); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down consumer...")
	cancel()
	<-done
}
