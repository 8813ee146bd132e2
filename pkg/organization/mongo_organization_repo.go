package organization

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

type organizationDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	OrgName   string             `bson:"orgName"`
	Address   string             `bson:"address,omitempty"`
	Owner     string             `bson:"owner"`
	IsActive  bool               `bson:"isActive"`
	Version   int                `bson:"__v"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d organizationDocument) toOrganization() Organization {
	return Organization{
		ID:        d.ID.Hex(),
		OrgName:   d.OrgName,
		Address:   d.Address,
		Owner:     d.Owner,
		IsActive:  boolPtr(d.IsActive),
		Version:   d.Version,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(database.OrganizationsCollection)}
}

func (r *MongoRepository) Create(ctx context.Context, org Organization) (Organization, error) {
	doc := organizationDocument{
		ID:        primitive.NewObjectID(),
		OrgName:   org.OrgName,
		Address:   org.Address,
		Owner:     org.Owner,
		IsActive:  org.Active(),
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Organization{}, ErrOrgNameTaken
		}
		err := fmt.Errorf("could not insert organization: %w", err)
		log.Error(err)
		return Organization{}, err
	}
	return doc.toOrganization(), nil
}

func (r *MongoRepository) FindById(ctx context.Context, id string) (Organization, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Organization{}, ErrOrganizationNotFound
	}

	var doc organizationDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Organization{}, ErrOrganizationNotFound
		}
		err := fmt.Errorf("could not find organization %s: %w", id, err)
		log.Error(err)
		return Organization{}, err
	}
	return doc.toOrganization(), nil
}

func (r *MongoRepository) FindByField(ctx context.Context, field string, value string) ([]Organization, error) {
	if _, ok := searchableFields[field]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return r.find(ctx, database.FieldFilter(field, value))
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]Organization, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) Update(ctx context.Context, org Organization) (Organization, error) {
	oid, err := primitive.ObjectIDFromHex(org.ID)
	if err != nil {
		return Organization{}, ErrOrganizationNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"orgName":   org.OrgName,
			"owner":     org.Owner,
			"isActive":  org.Active(),
			"updatedAt": org.UpdatedAt,
		},
		"$inc": bson.M{"__v": 1},
	}
	if org.Address != "" {
		update["$set"].(bson.M)["address"] = org.Address
	} else {
		update["$unset"] = bson.M{"address": ""}
	}

	var doc organizationDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Organization{}, ErrOrganizationNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Organization{}, ErrOrgNameTaken
		}
		err := fmt.Errorf("could not update organization %s: %w", org.ID, err)
		log.Error(err)
		return Organization{}, err
	}
	return doc.toOrganization(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		err := fmt.Errorf("could not delete organization %s: %w", id, err)
		log.Error(err)
		return false, err
	}
	return result.DeletedCount == 1, nil
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]Organization, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "orgName", Value: 1}}))
	if err != nil {
		err := fmt.Errorf("could not query organizations: %w", err)
		log.Error(err)
		return nil, err
	}

	var docs []organizationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		err := fmt.Errorf("could not decode organizations: %w", err)
		log.Error(err)
		return nil, err
	}

	orgs := make([]Organization, 0, len(docs))
	for _, doc := range docs {
		orgs = append(orgs, doc.toOrganization())
	}
	return orgs, nil
}
