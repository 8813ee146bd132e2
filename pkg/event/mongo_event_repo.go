package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventboard/eventboard/internal/database"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type eventDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	EventName    string             `bson:"eventName"`
	Description  string             `bson:"description,omitempty"`
	Detail       string             `bson:"detail"`
	Organizer    string             `bson:"organizer"`
	Organization string             `bson:"organization,omitempty"`
	Status       string             `bson:"status"`
	StartDate    time.Time          `bson:"startDate"`
	EndDate      time.Time          `bson:"endDate"`
	Version      int                `bson:"__v"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func toDocument(e Event, id primitive.ObjectID) eventDocument {
	return eventDocument{
		ID:           id,
		EventName:    e.EventName,
		Description:  e.Description,
		Detail:       e.Detail,
		Organizer:    e.Organizer,
		Organization: e.Organization,
		Status:       string(e.Status),
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Version:      e.Version,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (d eventDocument) toEvent() Event {
	return Event{
		ID:           d.ID.Hex(),
		EventName:    d.EventName,
		Description:  d.Description,
		Detail:       d.Detail,
		Organizer:    d.Organizer,
		Organization: d.Organization,
		Status:       Status(d.Status),
		StartDate:    d.StartDate.UTC(),
		EndDate:      d.EndDate.UTC(),
		Version:      d.Version,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(database.EventsCollection)}
}

func (r *MongoRepository) Create(ctx context.Context, event Event) (Event, error) {
	event.Version = 0
	doc := toDocument(event, primitive.NewObjectID())
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		err := fmt.Errorf("could not insert event: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return doc.toEvent(), nil
}

func (r *MongoRepository) FindById(ctx context.Context, id string) (Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Event{}, ErrEventNotFound
	}

	var doc eventDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrEventNotFound
		}
		err := fmt.Errorf("could not find event %s: %w", id, err)
		log.Error(err)
		return Event{}, err
	}
	return doc.toEvent(), nil
}

func (r *MongoRepository) FindByField(ctx context.Context, field string, value string) ([]Event, error) {
	if _, ok := searchableFields[field]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return r.find(ctx, database.FieldFilter(field, value))
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]Event, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) Update(ctx context.Context, event Event) (Event, error) {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return Event{}, ErrEventNotFound
	}

	set := bson.M{
		"eventName": event.EventName,
		"detail":    event.Detail,
		"organizer": event.Organizer,
		"status":    string(event.Status),
		"startDate": event.StartDate,
		"endDate":   event.EndDate,
		"updatedAt": event.UpdatedAt,
	}
	unset := bson.M{}
	if event.Description != "" {
		set["description"] = event.Description
	} else {
		unset["description"] = ""
	}
	if event.Organization != "" {
		set["organization"] = event.Organization
	} else {
		unset["organization"] = ""
	}
	update := bson.M{"$set": set, "$inc": bson.M{"__v": 1}}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc eventDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrEventNotFound
		}
		err := fmt.Errorf("could not update event %s: %w", event.ID, err)
		log.Error(err)
		return Event{}, err
	}
	return doc.toEvent(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		err := fmt.Errorf("could not delete event %s: %w", id, err)
		log.Error(err)
		return false, err
	}
	return result.DeletedCount == 1, nil
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}

	var docs []eventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		err := fmt.Errorf("could not decode events: %w", err)
		log.Error(err)
		return nil, err
	}

	events := make([]Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, doc.toEvent())
	}
	return events, nil
}
