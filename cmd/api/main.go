package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ariefcatur/agri-admin/internal/audit"
	"github.com/ariefcatur/agri-admin/internal/config"
	"github.com/ariefcatur/agri-admin/internal/httpx"
	kafkax "github.com/ariefcatur/agri-admin/internal/kafka"
	"github.com/ariefcatur/agri-admin/internal/listview"
	"github.com/ariefcatur/agri-admin/internal/market"
	"github.com/ariefcatur/agri-admin/internal/metrics"
	"github.com/ariefcatur/agri-admin/internal/postgres"
	"github.com/ariefcatur/agri-admin/internal/redisx"
)

func observe[T any](s *listview.Store[T], rec *audit.Recorder, col *metrics.Collectors) {
	audit.Watch(rec, s)
	metrics.Watch(col, s)
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seed, err := market.LoadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	// DB (audit log reads)
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// products survive restarts through the redis snapshot
	var mirror *redisx.Mirror[market.Product]
	if cfg.MirrorProducts {
		mirror = redisx.NewMirror[market.Product](redisx.NewKV(rdb), market.EntityProducts)
		lctx, lcancel := context.WithTimeout(ctx, 3*time.Second)
		items, ok, err := mirror.Load(lctx)
		lcancel()
		switch {
		case err != nil:
			log.Printf("mirror unavailable, using seed products: %v", err)
		case ok:
			seed.Products = items
			log.Printf("restored %d products from %s", len(items), mirror.Key())
		}
	}

	m := market.New(seed, market.WithAdmin(market.Admin{
		ID:   cfg.AdminID,
		Name: cfg.AdminName,
		Role: cfg.AdminRole,
	}))

	if mirror != nil {
		mirror.Attach(m.Products)
		go mirror.Run(ctx)
	}

	// Kafka producer (audit events)
	prod := kafkax.NewProducer(cfg.KafkaBrokers, audit.TopicAdminAudit, 1024)
	prod.Start(ctx)
	rec := &audit.Recorder{Producer: prod, Service: cfg.ServiceName, Actor: cfg.AdminID}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	col := metrics.New(reg)

	observe(m.Auctions, rec, col)
	observe(m.Products, rec, col)
	observe(m.Members, rec, col)
	observe(m.Contracts, rec, col)
	observe(m.Escrows, rec, col)
	observe(m.Notices, rec, col)
	observe(m.FAQs, rec, col)
	observe(m.FAQCategories, rec, col)
	observe(m.Inquiries, rec, col)
	observe(m.Mileage, rec, col)
	observe(m.Credits, rec, col)
	observe(m.Categories, rec, col)
	observe(m.Admins, rec, col)

	// Router & handlers
	router := httpx.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	(&httpx.MarketHandler{Market: m, PageSize: cfg.PageSize}).Register(router)
	(&httpx.AuditHandler{Repo: &audit.Repo{DB: db}, PageSize: cfg.PageSize}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()
	prod.WaitClosed()
	cancel()
}
