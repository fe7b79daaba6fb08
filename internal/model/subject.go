package model

// Subject is an engineering stream (branch). Values match the labels stored
// by the web client, so they double as display names.
type Subject string

const (
	SubjectCSE        Subject = "Computer Science & Engg"
	SubjectIT         Subject = "Information Technology"
	SubjectMech       Subject = "Mechanical Engineering"
	SubjectElectrical Subject = "Electrical Engineering"
	SubjectENTC       Subject = "Electronics & Telecom"
	SubjectCivil      Subject = "Civil Engineering"
	SubjectGeneral    Subject = "General Aptitude"
)

// AllSubjects lists every subject in declaration order.
var AllSubjects = []Subject{
	SubjectCSE,
	SubjectIT,
	SubjectMech,
	SubjectElectrical,
	SubjectENTC,
	SubjectCivil,
	SubjectGeneral,
}

// Valid reports whether s is one of the known subjects.
func (s Subject) Valid() bool {
	for _, known := range AllSubjects {
		if s == known {
			return true
		}
	}
	return false
}

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
