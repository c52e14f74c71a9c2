package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Astemirdum/room-reservation/pkg/circuit_breaker"
	"github.com/Astemirdum/room-reservation/pkg/kafka"
	"github.com/Astemirdum/room-reservation/pkg/logger"
	"github.com/Astemirdum/room-reservation/pkg/postgres"
	"github.com/Astemirdum/room-reservation/reservation/config"
	"github.com/Astemirdum/room-reservation/reservation/internal/handler"
	"github.com/Astemirdum/room-reservation/reservation/internal/model"
	"github.com/Astemirdum/room-reservation/reservation/internal/queue"
	"github.com/Astemirdum/room-reservation/reservation/internal/repository"
	"github.com/Astemirdum/room-reservation/reservation/internal/server"
	"github.com/Astemirdum/room-reservation/reservation/internal/service"
	"github.com/Astemirdum/room-reservation/reservation/migrations"
)

const (
	cbRecordLength     = 10
	cbTimeout          = 30 * time.Second
	cbPercentile       = 0.5
	cbRecoveryRequests = 3
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "reservation")

	repo, rooms, closeStore, err := newStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	events, closeEvents, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeEvents.Close(); err != nil {
			log.Error("producer close", zap.Error(err))
		}
	}()

	svc := service.NewService(repo, rooms, events, log)
	h := handler.New(svc, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		zap.String("storage", cfg.Storage.Driver))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}

func newStore(cfg *config.Config, log *zap.Logger) (repository.Repository, repository.RoomRepository, func(), error) {
	if cfg.Storage.Driver == config.DriverMemory {
		seed, err := ParseRooms(cfg.Storage.SeedRooms)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("seed rooms: %w", err)
		}
		mem := repository.NewMemory(seed...)
		log.Warn("in-memory storage, data is lost on restart", zap.Int("rooms", len(seed)))
		return mem, mem, func() {}, nil
	}

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("repo reservation %v", err)
	}
	return repo, repository.NewRoomRepository(db, log), db.Close, nil
}

func newPublisher(cfg kafka.Config, log *zap.Logger) (service.Publisher, io.Closer, error) {
	if !cfg.Enabled() {
		log.Info("kafka is not configured, reservation events are dropped")
		return queue.NopPublisher{}, queue.NopPublisher{}, nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer %v", err)
	}
	cb := circuit_breaker.New(cbRecordLength, cbTimeout, cbPercentile, cbRecoveryRequests)
	p := queue.NewProducer(producer, cfg.Topic, cb, log)
	return p, p, nil
}

// ParseRooms reads id:name:owner:pricePerDay entries.
func ParseRooms(entries []string) ([]model.Room, error) {
	rooms := make([]model.Room, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 4 || parts[0] == "" || parts[2] == "" {
			return nil, fmt.Errorf("room %q: want id:name:owner:pricePerDay", entry)
		}
		price, err := decimal.NewFromString(parts[3])
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("room %q: bad price %q", entry, parts[3])
		}
		rooms = append(rooms, model.Room{
			ID:          parts[0],
			Name:        parts[1],
			OwnerID:     parts[2],
			PricePerDay: price,
		})
	}
	return rooms, nil
}
