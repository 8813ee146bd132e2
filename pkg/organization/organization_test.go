package organization

import (
	"strings"
	"testing"

	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProps() Props {
	return Props{
		OrgName:  "Acme Meetups",
		Address:  "1 Main Street",
		Owner:    "user-1",
		IsActive: boolPtr(true),
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	apiErr, ok := apierror.As(err)
	require.True(t, ok, "expected an apierror, got %v", err)
	require.Equal(t, apierror.KindRequestValidation, apiErr.Kind)

	fields := map[string]string{}
	for _, fe := range apiErr.Fields {
		fields[fe.Field] = fe.Message
	}
	return fields
}

func TestOrganization_Validate(t *testing.T) {
	t.Run("should accept a complete organization", func(t *testing.T) {
		assert.NoError(t, Build(validProps()).Validate())
	})

	t.Run("should accept an inactive organization", func(t *testing.T) {
		props := validProps()
		props.IsActive = boolPtr(false)

		assert.NoError(t, Build(props).Validate())
	})

	t.Run("should require isActive to be present", func(t *testing.T) {
		props := validProps()
		props.IsActive = nil

		fields := fieldsOf(t, Build(props).Validate())

		assert.Equal(t, map[string]string{"isActive": "isActive is required"}, fields)
	})

	t.Run("should accept a missing address", func(t *testing.T) {
		props := validProps()
		props.Address = ""

		assert.NoError(t, Build(props).Validate())
	})

	t.Run("should enforce name and address lengths", func(t *testing.T) {
		props := validProps()
		props.OrgName = "Ac"
		props.Address = strings.Repeat("a", 81)

		fields := fieldsOf(t, Build(props).Validate())

		assert.Equal(t, "orgName must be at least 3 characters", fields["orgName"])
		assert.Equal(t, "address must be at most 80 characters", fields["address"])
	})

	t.Run("should reject a two character address", func(t *testing.T) {
		props := validProps()
		props.Address = "A1"

		fields := fieldsOf(t, Build(props).Validate())

		assert.Equal(t, "address must be at least 3 characters", fields["address"])
	})

	t.Run("should list every missing required field", func(t *testing.T) {
		fields := fieldsOf(t, Build(Props{}).Validate())

		assert.Equal(t, map[string]string{
			"orgName":  "orgName is required",
			"owner":    "owner is required",
			"isActive": "isActive is required",
		}, fields)
	})
}
