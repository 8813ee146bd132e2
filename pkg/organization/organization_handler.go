package organization

import (
	"errors"
	"net/http"
	"time"

	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/eventboard/eventboard/pkg/validation"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type OrganizationRequest struct {
	OrgName  string `json:"orgName"`
	Address  string `json:"address"`
	Owner    string `json:"owner"`
	IsActive *bool  `json:"isActive"`
}

type OrganizationDTO struct {
	ID        string    `json:"id"`
	OrgName   string    `json:"orgName"`
	Address   string    `json:"address,omitempty"`
	Owner     string    `json:"owner"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrganizationHandler struct {
	service Service
}

func NewOrganizationHandler(service Service) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// CreateOrganization godoc
// @Summary Create an organization
// @Tags Organization
// @Accept json
// @Produce json
// @Param organization body OrganizationRequest true "Organization"
// @Success 201 {object} OrganizationDTO
// @Failure 400 {object} apierror.ErrorBody
// @Router /api/organizations [post]
func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new organization")
	req, _ := validation.BodyFrom[OrganizationRequest](r.Context())

	org, err := h.service.Create(r.Context(), requestToProps(req))
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusCreated, OrganizationToDTO(org))
}

// GetOrganization godoc
// @Summary Get an organization by id
// @Tags Organization
// @Produce json
// @Param orgId path string true "Organization ID"
// @Success 200 {object} OrganizationDTO
// @Failure 404 {object} apierror.ErrorBody
// @Router /api/organizations/{orgId} [get]
func (h *OrganizationHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	orgId := mux.Vars(r)["orgId"]
	log.Debugf("Getting organization %s", orgId)

	org, err := h.service.Get(r.Context(), orgId)
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusOK, OrganizationToDTO(org))
}

// ListOrganizations godoc
// @Summary List organizations, optionally those of one owner
// @Tags Organization
// @Produce json
// @Param owner query string false "Owner user id"
// @Success 200 {array} OrganizationDTO
// @Router /api/organizations [get]
func (h *OrganizationHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing organizations")

	var orgs []Organization
	var err error
	if r.URL.Query().Has("owner") {
		orgs, err = h.service.ListBy(r.Context(), "owner", r.URL.Query().Get("owner"))
	} else {
		orgs, err = h.service.List(r.Context())
	}
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusOK, OrganizationsToDTO(orgs))
}

// UpdateOrganization godoc
// @Summary Replace the properties of an organization
// @Tags Organization
// @Accept json
// @Produce json
// @Param orgId path string true "Organization ID"
// @Param organization body OrganizationRequest true "Organization"
// @Success 200 {object} OrganizationDTO
// @Failure 400 {object} apierror.ErrorBody
// @Failure 404 {object} apierror.ErrorBody
// @Router /api/organizations/{orgId} [put]
func (h *OrganizationHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	orgId := mux.Vars(r)["orgId"]
	log.Debugf("Updating organization %s", orgId)
	req, _ := validation.BodyFrom[OrganizationRequest](r.Context())

	org, err := h.service.Update(r.Context(), orgId, requestToProps(req))
	if err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	apierror.WriteJSON(w, http.StatusOK, OrganizationToDTO(org))
}

// DeleteOrganization godoc
// @Summary Delete an organization, its events are detached
// @Tags Organization
// @Param orgId path string true "Organization ID"
// @Success 204 "No Content"
// @Failure 404 {object} apierror.ErrorBody
// @Router /api/organizations/{orgId} [delete]
func (h *OrganizationHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	orgId := mux.Vars(r)["orgId"]
	log.Debugf("Deleting organization %s", orgId)

	if err := h.service.Delete(r.Context(), orgId); err != nil {
		apierror.Write(w, toAPIError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAPIError(err error) error {
	switch {
	case errors.Is(err, ErrOrganizationNotFound):
		return apierror.NotFound("Organization not found").Wrap(err)
	case errors.Is(err, ErrUnknownField):
		return apierror.BadRequest(err.Error()).Wrap(err)
	default:
		return err
	}
}

func requestToProps(req OrganizationRequest) Props {
	return Props{
		OrgName:  req.OrgName,
		Address:  req.Address,
		Owner:    req.Owner,
		IsActive: req.IsActive,
	}
}

func OrganizationToDTO(org Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:        org.ID,
		OrgName:   org.OrgName,
		Address:   org.Address,
		Owner:     org.Owner,
		IsActive:  org.Active(),
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}

func OrganizationsToDTO(orgs []Organization) []OrganizationDTO {
	dtos := make([]OrganizationDTO, 0, len(orgs))
	for _, org := range orgs {
		dtos = append(dtos, OrganizationToDTO(org))
	}
	return dtos
}
