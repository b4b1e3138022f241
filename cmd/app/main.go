package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/veridex/carbon-ledger/pkg/certificates"
	"github.com/veridex/carbon-ledger/pkg/events"
	"github.com/veridex/carbon-ledger/pkg/handlers"
	"github.com/veridex/carbon-ledger/pkg/ledger"
	"github.com/veridex/carbon-ledger/pkg/lifecycle"
	dynamostore "github.com/veridex/carbon-ledger/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	walletsTable := os.Getenv("DYNAMODB_WALLETS_TABLE_NAME")
	projectsTable := os.Getenv("DYNAMODB_PROJECTS_TABLE_NAME")
	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	certificatesTable := os.Getenv("DYNAMODB_CERTIFICATES_TABLE_NAME")

	if walletsTable == "" || projectsTable == "" || transactionsTable == "" || certificatesTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// Create our storage implementation
	store := dynamostore.New(dbClient, walletsTable, projectsTable, transactionsTable, certificatesTable)

	// Domain event publisher. Events are best effort, so a missing queue URL
	// downgrades to a no-op publisher instead of refusing to start.
	var publisher events.Publisher = events.NoOpPublisher{}
	if queueURL := os.Getenv("EVENTS_QUEUE_URL"); queueURL != "" {
		publisher = events.NewSQSPublisher(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("EVENTS_QUEUE_URL not set, domain events disabled")
	}

	issuer := certificates.NewIssuer(os.Getenv("CERT_SERIAL_PREFIX"))
	engine := ledger.NewEngine(store, issuer, publisher)
	workflow := lifecycle.NewWorkflow(store, publisher)

	// Create our handler and mount it on the router
	handler := handlers.NewApiHandler(store, engine, workflow)
	router := handler.Router(logger)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
