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

var indexesForFormsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "formKey", Value: 1},
			{Key: "versionID", Value: 1},
		},
		Options: options.Index().SetName("formKey_versionID_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "formKey", Value: 1},
			{Key: "unpublished", Value: 1},
			{Key: "published", Value: -1},
		},
		Options: options.Index().SetName("formKey_unpublished_published_1"),
	},
}

func (dbService *FormDBService) CreateDefaultIndexesForFormsCollection(instanceID string) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionForms(instanceID).Indexes().CreateMany(ctx, indexesForFormsCollection)
	if err != nil {
		slog.Error("Error creating index for forms", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
	}
}

func (dbService *FormDBService) SaveFormVersion(instanceID string, form *formTypes.Form) (err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionForms(instanceID).InsertOne(ctx, form)
	if err != nil {
		return err
	}
	form.ID = ret.InsertedID.(primitive.ObjectID)
	return nil
}

var sortByPublishedDesc = bson.D{
	primitive.E{Key: "published", Value: -1},
}

// projection used when listing versions - the question list is the heavy part
var projectionToRemoveQuestions = bson.D{
	primitive.E{Key: "questions", Value: 0},
}

func (dbService *FormDBService) GetFormVersions(instanceID string, formKey string) (forms []*formTypes.Form, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if len(formKey) > 0 {
		filter["formKey"] = formKey
	}
	opts := &options.FindOptions{}
	opts.SetProjection(projectionToRemoveQuestions)
	opts.SetSort(sortByPublishedDesc)

	cur, err := dbService.collectionForms(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return forms, err
	}
	if err = cur.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (dbService *FormDBService) GetFormVersion(instanceID string, formKey string, versionID string) (form *formTypes.Form, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"formKey":   formKey,
		"versionID": versionID,
	}

	err = dbService.collectionForms(instanceID).FindOne(ctx, filter).Decode(&form)
	if err != nil {
		return nil, err
	}
	return form, nil
}

func (dbService *FormDBService) GetCurrentFormVersion(instanceID string, formKey string) (form *formTypes.Form, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"formKey": formKey,
		"$or": []bson.M{
			{"unpublished": 0},
			{"unpublished": bson.M{"$exists": false}},
		},
	}

	opts := &options.FindOneOptions{}
	opts.SetSort(sortByPublishedDesc)

	err = dbService.collectionForms(instanceID).FindOne(ctx, filter, opts).Decode(&form)
	if err != nil {
		return nil, err
	}
	return form, nil
}

func (dbService *FormDBService) GetFormKeys(instanceID string, includeUnpublished bool) (formKeys []string, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if !includeUnpublished {
		// zero value is not stored, so match absent as well
		filter["$or"] = []bson.M{
			{"unpublished": 0},
			{"unpublished": bson.M{"$exists": false}},
		}
	}
	res, err := dbService.collectionForms(instanceID).Distinct(ctx, "formKey", filter)
	if err != nil {
		return formKeys, err
	}
	formKeys = make([]string, len(res))
	for i, r := range res {
		formKeys[i] = r.(string)
	}
	return formKeys, nil
}

func (dbService *FormDBService) UnpublishForm(instanceID string, formKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"formKey":     formKey,
		"unpublished": bson.M{"$not": bson.M{"$gt": 0}},
	}
	update := bson.M{"$set": bson.M{"unpublished": time.Now().Unix()}}
	_, err := dbService.collectionForms(instanceID).UpdateMany(ctx, filter, update)
	return err
}

func (dbService *FormDBService) DeleteFormVersion(instanceID string, formKey string, versionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"formKey":   formKey,
		"versionID": versionID,
	}

	res, err := dbService.collectionForms(instanceID).DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount < 1 {
		return errors.New("no item was deleted")
	}
	return nil
}
