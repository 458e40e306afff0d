package seeds

import (
	"gorm.io/gorm"

	"sekolahku_backend/internals/seeds/students"
	"sekolahku_backend/internals/seeds/teachers"
)

const (
	DefaultStudentsFile = "internals/seeds/students/data_students.json"
	DefaultTeachersFile = "internals/seeds/teachers/data_teachers.yaml"
)

type Result struct {
	Students int
	Teachers int
}

// RunAllSeeds: path kosong → file itu dilewati.
func RunAllSeeds(db *gorm.DB, studentsFile, teachersFile string) (Result, error) {
	var res Result
	var err error

	//* Students
	if studentsFile != "" {
		if res.Students, err = students.SeedStudentsFromFile(db, studentsFile); err != nil {
			return res, err
		}
	}

	//* Teachers
	if teachersFile != "" {
		if res.Teachers, err = teachers.SeedTeachersFromFile(db, teachersFile); err != nil {
			return res, err
		}
	}
	return res, nil
}
