package organization

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// RepositoryStub keeps organizations in memory and enforces the orgName uniqueness of
// the real stores.
type RepositoryStub struct {
	nextId int
	orgs   map[string]Organization
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{orgs: map[string]Organization{}}
}

func (s *RepositoryStub) Create(ctx context.Context, org Organization) (Organization, error) {
	if s.nameTaken(org.OrgName, "") {
		return Organization{}, ErrOrgNameTaken
	}
	s.nextId++
	org.ID = strconv.Itoa(s.nextId)
	org.Version = 0
	org.IsActive = boolPtr(org.Active())
	s.orgs[org.ID] = org
	return org, nil
}

func (s *RepositoryStub) FindById(ctx context.Context, id string) (Organization, error) {
	org, ok := s.orgs[id]
	if !ok {
		return Organization{}, ErrOrganizationNotFound
	}
	return org, nil
}

func (s *RepositoryStub) FindByField(ctx context.Context, field string, value string) ([]Organization, error) {
	if _, ok := searchableFields[field]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	orgs := make([]Organization, 0)
	for _, org := range s.sorted() {
		var fieldValue string
		switch field {
		case "orgName":
			fieldValue = org.OrgName
		case "owner":
			fieldValue = org.Owner
		case "address":
			fieldValue = org.Address
		}
		if fieldValue == value {
			orgs = append(orgs, org)
		}
	}
	return orgs, nil
}

func (s *RepositoryStub) FindAll(ctx context.Context) ([]Organization, error) {
	return s.sorted(), nil
}

func (s *RepositoryStub) Update(ctx context.Context, org Organization) (Organization, error) {
	stored, ok := s.orgs[org.ID]
	if !ok {
		return Organization{}, ErrOrganizationNotFound
	}
	if s.nameTaken(org.OrgName, org.ID) {
		return Organization{}, ErrOrgNameTaken
	}
	org.Version = stored.Version + 1
	org.CreatedAt = stored.CreatedAt
	org.IsActive = boolPtr(org.Active())
	s.orgs[org.ID] = org
	return org, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.orgs[id]; !ok {
		return false, nil
	}
	delete(s.orgs, id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.orgs = map[string]Organization{}
}

func (s *RepositoryStub) nameTaken(name string, exceptId string) bool {
	for id, org := range s.orgs {
		if id != exceptId && org.OrgName == name {
			return true
		}
	}
	return false
}

func (s *RepositoryStub) sorted() []Organization {
	orgs := make([]Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		orgs = append(orgs, org)
	}
	sort.Slice(orgs, func(i, j int) bool {
		return orgs[i].OrgName < orgs[j].OrgName
	})
	return orgs
}
