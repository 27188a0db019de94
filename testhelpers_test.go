//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campus-halls/service-booking/internal/application"
	"github.com/campus-halls/service-booking/internal/events"
	"github.com/campus-halls/service-booking/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// bookingStack holds wired-up service components plus seeded fixtures.
type bookingStack struct {
	Bookings     *application.BookingService
	Availability *application.AvailabilityService
	DepartmentID uuid.UUID
	HallID       uuid.UUID
	Cleanup      func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a
// connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_booking",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_booking sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.DepartmentModel{},
		&repository.HallModel{},
		&repository.BookingModel{},
	))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicBookingEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupBookingStack wires the services against the containers and seeds a
// department with one active hall.
func setupBookingStack(t *testing.T, db *gorm.DB, brokers []string) *bookingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	producer := events.NewProducer(brokers, logger)
	notifier := events.NewKafkaNotifier(producer)

	bookingRepo := repository.NewGormBookingRepository(db)
	hallRepo := repository.NewGormHallRepository(db)
	departmentRepo := repository.NewGormDepartmentRepository(db)

	departmentSvc := application.NewDepartmentService(departmentRepo, logger)
	bookingSvc := application.NewBookingService(bookingRepo, hallRepo, departmentSvc, notifier, logger)
	availabilitySvc := application.NewAvailabilityService(bookingRepo, hallRepo, logger)

	ctx := context.Background()
	dept, err := departmentSvc.CreateDepartment(ctx, application.CreateDepartmentRequest{
		Name: fmt.Sprintf("Engineering-%s", uuid.New().String()[:8]),
	})
	require.NoError(t, err)

	hallSvc := application.NewHallService(hallRepo, logger)
	hall, err := hallSvc.CreateHall(ctx, application.CreateHallRequest{
		DepartmentID: dept.ID,
		Name:         "Dewan Utama",
		Location:     "Block A, Level 2",
		Capacity:     200,
		HasProjector: true,
	})
	require.NoError(t, err)

	return &bookingStack{
		Bookings:     bookingSvc,
		Availability: availabilitySvc,
		DepartmentID: dept.ID,
		HallID:       hall.ID,
		Cleanup:      func() { _ = producer.Close() },
	}
}

// createRequest builds a valid booking request against the seeded hall.
func (s *bookingStack) createRequest(date, start, end string) application.CreateBookingRequest {
	return application.CreateBookingRequest{
		HallID:         s.HallID,
		DepartmentID:   s.DepartmentID,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		Purpose:        "Integration seminar",
		Attendees:      50,
		RequesterName:  "Aisha Rahman",
		RequesterEmail: "aisha@example.edu",
	}
}

// createTopics pre-creates Kafka topics so the first produce does not race
// topic auto-creation.
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	controllerConn, err := kafkago.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	configs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		configs[i] = kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}
	}
	require.NoError(t, controllerConn.CreateTopics(configs...))
}

// consumeOneEvent reads messages from a topic until one matches the event
// type or the timeout elapses.
func consumeOneEvent(t *testing.T, brokers []string, topic, eventType string, timeout time.Duration) events.CloudEvent {
	t.Helper()
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     fmt.Sprintf("test-consumer-%s", uuid.New().String()[:8]),
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		msg, err := reader.ReadMessage(ctx)
		require.NoError(t, err, "no %s event on %s within %s", eventType, topic, timeout)

		var ce events.CloudEvent
		require.NoError(t, json.Unmarshal(msg.Value, &ce))
		if ce.Type == eventType {
			return ce
		}
	}
}
