package repository

import "github.com/maanvikp20/promosite/internal/db"

const StudentsCollection = "students"

type StudentRepo struct {
	*RecordRepo
}

func NewStudentRepo(c *db.Collection) *StudentRepo {
	return &StudentRepo{RecordRepo: NewRecordRepo(c, "Student")}
}
