package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/veridex/carbon-ledger/pkg/ledger"
	dynamostore "github.com/veridex/carbon-ledger/pkg/storage/dynamodb"
)

var auditor *ledger.Auditor

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	walletsTable := os.Getenv("DYNAMODB_WALLETS_TABLE_NAME")
	projectsTable := os.Getenv("DYNAMODB_PROJECTS_TABLE_NAME")
	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	certificatesTable := os.Getenv("DYNAMODB_CERTIFICATES_TABLE_NAME")

	store := dynamostore.New(dbClient, walletsTable, projectsTable, transactionsTable, certificatesTable)
	auditor = ledger.NewAuditor(store)
}

// HandleRequest is triggered by an EventBridge Schedule. It runs the read-only
// ledger integrity audit and reports its findings; it never mutates balances.
func HandleRequest(ctx context.Context) (*ledger.AuditReport, error) {
	log.Println("Starting ledger integrity audit...")

	report, err := auditor.Run(ctx)
	if err != nil {
		log.Printf("ERROR: audit run failed: %v", err)
		return nil, err
	}

	log.Printf("Audited %d wallets, %d projects, %d transactions, %d certificates",
		report.WalletsChecked, report.ProjectsChecked, report.TransactionsChecked, report.CertificatesChecked)

	if report.Clean() {
		log.Println("Audit finished with no findings.")
		return report, nil
	}

	for _, finding := range report.Findings {
		log.Printf("FINDING [%s] %s: %s", finding.Check, finding.Entity, finding.Detail)
	}
	log.Printf("Audit finished with %d findings.", len(report.Findings))
	return report, nil
}

func main() {
	lambda.Start(HandleRequest)
}
