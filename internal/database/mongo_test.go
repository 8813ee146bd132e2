package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFieldFilter(t *testing.T) {
	t.Run("should compare a value directly", func(t *testing.T) {
		assert.Equal(t, bson.M{"owner": "user-1"}, FieldFilter("owner", "user-1"))
	})

	t.Run("should match empty, null and missing fields for an empty value", func(t *testing.T) {
		assert.Equal(t, bson.M{"address": bson.M{"$in": bson.A{"", nil}}}, FieldFilter("address", ""))
	})
}
