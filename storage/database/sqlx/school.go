package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/storage/database"
)

const schoolColumns = "id, name, address, city, county, postcode, phone, website, domain"

var schoolConflicts = map[string]error{
	"name":   school.ErrNameExists,
	"domain": school.ErrDomainExists,
}

type schoolRepository struct {
	db core.DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db core.DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	id, err := insert(ctx, repo.db, `INSERT INTO schools (name, address, city, county, postcode, phone, website, domain)
		VALUES (:name, :address, :city, :county, :postcode, :phone, :website, :domain)`, sch)
	if err != nil {
		return school.School{}, errors.Wrap(trapUniqueErr(err, schoolConflicts), "inserting school")
	}
	sch.ID = id
	return sch, nil
}

func (repo *schoolRepository) QuerySchools(ctx context.Context, ordering ...core.DBOrdering) ([]school.School, error) {
	order, err := orderBy(ordering, school.OrderingFields, "")
	if err != nil {
		return nil, err
	}
	schools := make([]school.School, 0)
	if err = repo.db.SelectContext(ctx, &schools, "SELECT "+schoolColumns+" FROM schools"+order); err != nil {
		return nil, errors.Wrap(err, "selecting schools")
	}
	return schools, nil
}

func (repo *schoolRepository) GetSchoolByID(ctx context.Context, id int64) (school.School, error) {
	return getSchool(ctx, repo.db, id)
}

func getSchool(ctx context.Context, db core.DBExecutor, id int64) (school.School, error) {
	var sch school.School
	q := db.Rebind("SELECT " + schoolColumns + " FROM schools WHERE id = ?")
	if err := db.GetContext(ctx, &sch, q, id); err != nil {
		return school.School{}, errors.Wrap(trapNoRowsErr(err, school.ErrNotFound), "selecting school")
	}
	return sch, nil
}

func (repo *schoolRepository) UpdateSchool(ctx context.Context, sch school.School) (school.School, error) {
	err := database.InTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		err := update(ctx, tx, `UPDATE schools SET name = :name, address = :address, city = :city, county = :county,
			postcode = :postcode, phone = :phone, website = :website, domain = :domain WHERE id = :id`, sch, school.ErrNotFound)
		if err != nil {
			return trapUniqueErr(err, schoolConflicts)
		}
		sch, err = getSchool(ctx, tx, sch.ID)
		return err
	})
	if err != nil {
		return school.School{}, errors.Wrap(err, "updating school")
	}
	return sch, nil
}

func (repo *schoolRepository) DeleteSchool(ctx context.Context, id int64) error {
	return deleteByID(ctx, repo.db, "schools", id, school.ErrNotFound)
}
