package form

import (
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

var indexesForResponseSessionsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "sessionID", Value: 1},
		},
		Options: options.Index().SetName("sessionID_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "formKey", Value: 1},
			{Key: "status", Value: 1},
			{Key: "startedAt", Value: -1},
		},
		Options: options.Index().SetName("formKey_status_startedAt_1"),
	},
}

func (dbService *FormDBService) CreateDefaultIndexesForResponseSessionsCollection(instanceID string) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionResponseSessions(instanceID).Indexes().CreateMany(ctx, indexesForResponseSessionsCollection)
	if err != nil {
		slog.Error("Error creating index for response sessions", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
	}
}

func (dbService *FormDBService) CreateResponseSession(instanceID string, session *formTypes.ResponseSession) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	session.StartedAt = time.Now().Unix()
	session.Status = formTypes.SESSION_STATUS_OPEN
	if session.Answers == nil {
		session.Answers = formTypes.AnswerMap{}
	}

	ret, err := dbService.collectionResponseSessions(instanceID).InsertOne(ctx, session)
	if err != nil {
		return err
	}
	session.ID = ret.InsertedID.(primitive.ObjectID)
	return nil
}

func (dbService *FormDBService) GetResponseSession(instanceID string, sessionID string) (session formTypes.ResponseSession, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"sessionID": sessionID}
	err = dbService.collectionResponseSessions(instanceID).FindOne(ctx, filter).Decode(&session)
	return session, err
}

// UpdateResponseSessionProgress persists the answers and trail after a
// navigator step. Only open sessions can progress.
func (dbService *FormDBService) UpdateResponseSessionProgress(instanceID string, sessionID string, answers formTypes.AnswerMap, trail []formTypes.TrailEntry) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID": sessionID,
		"status":    formTypes.SESSION_STATUS_OPEN,
	}
	update := bson.M{"$set": bson.M{
		"answers": answers,
		"trail":   trail,
	}}

	res, err := dbService.collectionResponseSessions(instanceID).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return errors.New("no open session found")
	}
	return nil
}

func (dbService *FormDBService) MarkResponseSessionSubmitted(instanceID string, sessionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID": sessionID,
		"status":    formTypes.SESSION_STATUS_OPEN,
	}
	update := bson.M{"$set": bson.M{
		"status":      formTypes.SESSION_STATUS_SUBMITTED,
		"submittedAt": time.Now().Unix(),
	}}

	res, err := dbService.collectionResponseSessions(instanceID).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return errors.New("no open session found")
	}
	return nil
}

func (dbService *FormDBService) GetResponseSessionsForForm(instanceID string, formKey string, status string, page int64, limit int64) (sessions []formTypes.ResponseSession, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"formKey": formKey}
	if status != "" {
		filter["status"] = status
	}

	opts := &options.FindOptions{}
	opts.SetSort(bson.D{primitive.E{Key: "startedAt", Value: -1}})
	if limit > 0 {
		opts.SetSkip((page - 1) * limit)
		opts.SetLimit(limit)
	}

	cur, err := dbService.collectionResponseSessions(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return sessions, err
	}
	if err = cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
