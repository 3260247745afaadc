package dummydb

import (
	"context"
	"strings"

	"github.com/trezcool/lms/core/category"
)

type categoryRepository struct {
	db *DB
}

var _ category.Repository = (*categoryRepository)(nil) // interface compliance check

func NewCategoryRepository(db *DB) category.Repository {
	return &categoryRepository{db: db}
}

// withCoursesCount must be called with the read lock held.
func (repo *categoryRepository) withCoursesCount(cat category.Category) category.Category {
	cat.CoursesCount = 0
	for _, c := range repo.db.courses {
		if c.CategoryID == cat.ID {
			cat.CoursesCount++
		}
	}
	return cat
}

// nameTaken must be called with the lock held.
func (repo *categoryRepository) nameTaken(name string, excludedIDs ...int) bool {
	for _, cat := range repo.db.categories {
		if strings.EqualFold(cat.Name, name) && !isExcluded(cat.ID, excludedIDs) {
			return true
		}
	}
	return false
}

func (repo *categoryRepository) CheckNameUniqueness(_ context.Context, name string, excludedIDs ...int) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if repo.nameTaken(name, excludedIDs...) {
		return category.ErrNameExists
	}
	return nil
}

func (repo *categoryRepository) CreateCategory(_ context.Context, cat category.Category) (category.Category, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.nameTaken(cat.Name) {
		return category.Category{}, category.ErrNameExists
	}
	cat.ID = repo.db.nextPK("categories")
	cat.CoursesCount = 0
	repo.db.categories[cat.ID] = cat
	return cat, nil
}

func (repo *categoryRepository) QueryCategories(_ context.Context) ([]category.Category, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cats := make([]category.Category, 0, len(repo.db.categories))
	for _, id := range sortedKeys(repo.db.categories) {
		cats = append(cats, repo.withCoursesCount(repo.db.categories[id]))
	}
	return cats, nil
}

func (repo *categoryRepository) GetCategoryByID(_ context.Context, id int) (category.Category, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cat, ok := repo.db.categories[id]; ok {
		return repo.withCoursesCount(cat), nil
	}
	return category.Category{}, category.ErrNotFound
}

func (repo *categoryRepository) UpdateCategory(_ context.Context, cat category.Category) (category.Category, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	old, ok := repo.db.categories[cat.ID]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	if repo.nameTaken(cat.Name, cat.ID) {
		return category.Category{}, category.ErrNameExists
	}
	cat.CreatedAt = old.CreatedAt
	repo.db.categories[cat.ID] = cat
	return repo.withCoursesCount(cat), nil
}

func (repo *categoryRepository) DeleteCategory(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.categories[id]; !ok {
		return category.ErrNotFound
	}
	var courseIDs []int
	for cid, c := range repo.db.courses {
		if c.CategoryID == id {
			courseIDs = append(courseIDs, cid)
		}
	}
	repo.db.deleteCourses(courseIDs...)
	delete(repo.db.categories, id)
	return nil
}
