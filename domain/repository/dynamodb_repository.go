package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/airahq/aira/domain/entity"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

func NewDynamoDBRepository(table string) (*DynamoDBRepository, error) {
	var db *dynamo.DB
	if os.Getenv("DYNAMO_LOCAL") != "" {
		cfg, err := config.LoadDefaultConfig(context.TODO(),
			config.WithRegion("dummy"),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "dummy")),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %v", err)
		}
		db = dynamo.New(cfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String("http://localhost:8000")
		},
		)

		err = setupDdbSchema(db, table)
		if err != nil {
			return nil, fmt.Errorf("failed to setup schema: %v", err)
		}
	} else {
		cfg, err := config.LoadDefaultConfig(context.TODO())
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %v", err)
		}
		db = dynamo.New(cfg)
	}

	return &DynamoDBRepository{db: db, table: table}, nil
}

func setupDdbSchema(db *dynamo.DB, table string) error {
	t := db.Table(table)
	_, err := t.Describe().Run(context.TODO())
	if err != nil {

		input := db.CreateTable(table, entity.TimelineEntry{}).
			Provision(10, 10)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return input.Run(ctx)
	}
	return nil
}

type DynamoDBRepository struct {
	db    *dynamo.DB
	table string
}

// AppendEntry writes one timeline record. The range key is the append
// timestamp plus a random suffix, so two appends in the same nanosecond
// still insert rather than overwrite.
func (r *DynamoDBRepository) AppendEntry(ctx context.Context, entry *entity.TimelineEntry) error {
	stored := *entry
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	stored.SortKey = fmt.Sprintf("%020d-%s", stored.CreatedAt.UnixNano(), uuid.NewString()[:8])
	return r.db.Table(r.table).Put(stored).Run(ctx)
}

// Entries reads one incident's timeline in insertion order. The zero-padded
// range key sorts lexicographically, which is the append order.
func (r *DynamoDBRepository) Entries(ctx context.Context, incidentID string) ([]entity.TimelineEntry, error) {
	var entries []entity.TimelineEntry
	err := r.db.Table(r.table).Get("incident_id", incidentID).All(ctx, &entries)
	if err != nil {
		if err == dynamo.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}
