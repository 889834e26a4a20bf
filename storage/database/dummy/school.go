package dummydb

import (
	"context"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/school"
)

type schoolRepository struct {
	db *table[school.School]
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db.school}
}

func schoolKey(sch school.School, field string) interface{} {
	switch field {
	case "name":
		return sch.Name
	case "city":
		return sch.City
	case "county":
		return sch.County
	case "postcode":
		return sch.Postcode
	case "domain":
		return sch.Domain
	}
	return sch.ID
}

// checkUniqueness must be called with a lock held.
func (repo *schoolRepository) checkUniqueness(sch school.School) error {
	for _, s := range repo.db.rows {
		if s.ID == sch.ID {
			continue
		}
		if s.Name == sch.Name {
			return school.ErrNameExists
		}
		if s.Domain == sch.Domain {
			return school.ErrDomainExists
		}
	}
	return nil
}

func (repo *schoolRepository) CreateSchool(_ context.Context, sch school.School) (school.School, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if err := repo.checkUniqueness(sch); err != nil {
		return school.School{}, err
	}
	sch.ID = repo.db.nextID()
	repo.db.rows[sch.ID] = sch
	return sch, nil
}

func (repo *schoolRepository) QuerySchools(_ context.Context, ordering ...core.DBOrdering) ([]school.School, error) {
	if err := checkOrdering(ordering, school.OrderingFields); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.query(nil, ordering, schoolKey), nil
}

func (repo *schoolRepository) GetSchoolByID(_ context.Context, id int64) (school.School, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sch, ok := repo.db.rows[id]; ok {
		return sch, nil
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateSchool(_ context.Context, sch school.School) (school.School, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[sch.ID]; !ok {
		return school.School{}, school.ErrNotFound
	}
	if err := repo.checkUniqueness(sch); err != nil {
		return school.School{}, err
	}
	repo.db.rows[sch.ID] = sch
	return sch, nil
}

func (repo *schoolRepository) DeleteSchool(_ context.Context, id int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
