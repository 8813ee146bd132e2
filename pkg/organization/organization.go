package organization

import (
	"time"

	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/eventboard/eventboard/pkg/validation"
)

// Organization groups events under an owner. IsActive is a pointer so that a missing
// value can be told apart from false.
type Organization struct {
	ID        string    `json:"-"`
	OrgName   string    `json:"orgName" validate:"required,min=3,max=80"`
	Address   string    `json:"address" validate:"omitempty,min=3,max=80"`
	Owner     string    `json:"owner" validate:"required"`
	IsActive  *bool     `json:"isActive" validate:"required"`
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Props struct {
	OrgName  string
	Address  string
	Owner    string
	IsActive *bool
}

func Build(props Props) Organization {
	o := Organization{}
	o.apply(props)
	return o
}

func (o *Organization) apply(props Props) {
	o.OrgName = props.OrgName
	o.Address = props.Address
	o.Owner = props.Owner
	o.IsActive = props.IsActive
}

// Active reports the stored flag, a missing value reads as false.
func (o Organization) Active() bool {
	return o.IsActive != nil && *o.IsActive
}

func (o Organization) Validate() error {
	if fieldErrs := validation.Struct(o); len(fieldErrs) > 0 {
		return apierror.RequestValidation(fieldErrs)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
