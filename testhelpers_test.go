//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	lodgingEvents "github.com/Kilat-Pet-Delivery/service-lodging/internal/events"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/repository"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const (
	billingTopic = "billing.events"
	paymentTopic = "payment.events"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// lodgingStack holds wired-up lodging service components.
type lodgingStack struct {
	Clock           *testClock
	Bookings        *application.BookingService
	Availability    *application.AvailabilityService
	Inventory       *application.InventoryService
	Consumer        *lodgingEvents.PaymentEventConsumer
	CleanupProducer func()
}

// testClock lets tests move the service's notion of now.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// setupContainers starts PostgreSQL and Kafka testcontainers, applies the
// migrations and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_lodging",
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

	dbConfig := database.PostgresConfig{
		Host:         pgHost,
		Port:         pgPort.Int(),
		User:         "test",
		Password:     "test",
		DBName:       "test_lodging",
		SSLMode:      "disable",
		MaxOpenConns: 20,
	}
	db, err := database.Connect(dbConfig, log)
	require.NoError(t, err, "PostgreSQL not ready for connections")
	require.NoError(t, database.RunMigrations(dbConfig.DatabaseURL(), "migrations", log))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, billingTopic, paymentTopic)

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

// setupLodgingStack wires up the lodging service stack against real infrastructure.
func setupLodgingStack(t *testing.T, db *gorm.DB, brokers []string, now time.Time) *lodgingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	clock := &testClock{now: now}

	bookingRepo := repository.NewGormBookingRepository(db)
	propertyRepo := repository.NewGormPropertyRepository(db)
	roomTypeRepo := repository.NewGormRoomTypeRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)

	producer := kafka.NewProducer(brokers, logger)
	availability := application.NewAvailabilityService(bookingRepo, roomRepo, propertyRepo, logger)
	bookingSvc := application.NewBookingService(application.BookingServiceDeps{
		Bookings:     bookingRepo,
		UnitOfWork:   repository.NewGormUnitOfWork(db),
		Rooms:        roomRepo,
		RoomTypes:    roomTypeRepo,
		Properties:   propertyRepo,
		Availability: availability,
		Billing:      lodgingEvents.NewBillingPublisher(producer, billingTopic, logger),
		Now:          clock.Now,
	}, logger)

	groupID := fmt.Sprintf("test-lodging-%s", uuid.New().String()[:8])
	consumer := lodgingEvents.NewPaymentEventConsumer(brokers, groupID, paymentTopic, bookingSvc, logger)

	return &lodgingStack{
		Clock:        clock,
		Bookings:     bookingSvc,
		Availability: availability,
		Inventory:    application.NewInventoryService(propertyRepo, roomTypeRepo, roomRepo, logger),
		Consumer:     consumer,
		CleanupProducer: func() {
			_ = bookingSvc.Drain(context.Background())
			_ = producer.Close()
		},
	}
}

// seedRoom creates a property with one room type and one room.
func seedRoom(t *testing.T, stack *lodgingStack, priceCents int64) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	property, err := stack.Inventory.CreateProperty(ctx, application.CreatePropertyRequest{
		OwnerID: uuid.New(), Name: "Seaview Inn", City: "Penang",
	})
	require.NoError(t, err)
	roomType, err := stack.Inventory.CreateRoomType(ctx, property.ID, application.CreateRoomTypeRequest{
		Name: "Deluxe", PriceCents: priceCents, Capacity: 2, Floor: 1,
	})
	require.NoError(t, err)
	room, err := stack.Inventory.CreateRoom(ctx, roomType.ID, application.CreateRoomRequest{Number: "101"})
	require.NoError(t, err)
	return room.ID
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForBookingStatus polls the bookings table until the status matches.
func waitForBookingStatus(t *testing.T, db *gorm.DB, bookingID uuid.UUID, expectedStatus string, timeout time.Duration) repository.BookingModel {
	t.Helper()
	var result repository.BookingModel
	require.Eventually(t, func() bool {
		var model repository.BookingModel
		err := db.Where("id = ?", bookingID).First(&model).Error
		if err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "booking did not transition to %s", expectedStatus)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the
// expected type about the given subject.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType, subject string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType && ce.Subject == subject {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
