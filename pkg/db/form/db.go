package form

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formpilot/formpilot-backend/pkg/db"
)

const (
	COLLECTION_NAME_FORMS             = "forms"
	COLLECTION_NAME_RESPONSE_SESSIONS = "responseSessions"
)

type FormDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewFormDBService(configs db.DBConfig) (*FormDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		return nil, err
	}

	formDBSc := &FormDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if err := formDBSc.ensureIndexes(); err != nil {
		slog.Error("Error ensuring indexes for form DB", slog.String("error", err.Error()))
	}

	return formDBSc, nil
}

func (dbService *FormDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_formDB"
}

func (dbService *FormDBService) collectionForms(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_FORMS)
}

func (dbService *FormDBService) collectionResponseSessions(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_RESPONSE_SESSIONS)
}

func (dbService *FormDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *FormDBService) ensureIndexes() error {
	for _, instanceID := range dbService.InstanceIDs {
		dbService.CreateDefaultIndexesForFormsCollection(instanceID)
		dbService.CreateDefaultIndexesForResponseSessionsCollection(instanceID)
	}
	return nil
}
