package dummydb

import (
	"sort"
	"sync"

	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/enrollment"
	"github.com/trezcool/lms/core/qa"
	"github.com/trezcool/lms/core/user"
)

// DB is an in-memory store. A single lock guards every table so that
// cross-table reads (counts, joins) and cascading deletes stay consistent.
type DB struct {
	sync.RWMutex
	pks map[string]int

	users       map[int]user.User
	categories  map[int]category.Category
	courses     map[int]course.Course
	lessons     map[int]content.Lesson
	materials   map[int]content.Material
	enrollments map[int]enrollment.Enrollment
	questions   map[int]qa.Question
}

func Open() (*DB, error) {
	db := &DB{pks: make(map[string]int)}
	db.reset()
	return db, nil
}

// Reset empties every table. Primary keys keep increasing.
func (db *DB) Reset() {
	db.Lock()
	defer db.Unlock()
	db.reset()
}

func (db *DB) reset() {
	db.users = make(map[int]user.User)
	db.categories = make(map[int]category.Category)
	db.courses = make(map[int]course.Course)
	db.lessons = make(map[int]content.Lesson)
	db.materials = make(map[int]content.Material)
	db.enrollments = make(map[int]enrollment.Enrollment)
	db.questions = make(map[int]qa.Question)
}

// nextPK must be called with the write lock held.
func (db *DB) nextPK(table string) int {
	db.pks[table]++
	return db.pks[table]
}

func sortedKeys[V any](table map[int]V) []int {
	keys := make([]int, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// deleteCourses removes the courses and everything that hangs off them.
// Must be called with the write lock held.
func (db *DB) deleteCourses(ids ...int) {
	for _, id := range ids {
		for lid, l := range db.lessons {
			if l.CourseID != id {
				continue
			}
			for qid, q := range db.questions {
				if q.LessonID == lid {
					delete(db.questions, qid)
				}
			}
			delete(db.lessons, lid)
		}
		for mid, m := range db.materials {
			if m.CourseID == id {
				delete(db.materials, mid)
			}
		}
		for eid, e := range db.enrollments {
			if e.CourseID == id {
				delete(db.enrollments, eid)
			}
		}
		delete(db.courses, id)
	}
}
