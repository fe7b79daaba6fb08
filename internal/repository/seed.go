package repository

import "github.com/stemsi/gatemock-backend/internal/model"

// InitialQuestions returns a fresh copy of the bank shipped with a new
// install.
func InitialQuestions() []model.Question {
	return []model.Question{
		// CSE
		{
			ID:            "cse_q1",
			Text:          "Which of the following is NOT a stable sorting algorithm?",
			Options:       []string{"Merge Sort", "Insertion Sort", "Quick Sort", "Bubble Sort"},
			CorrectAnswer: 2,
			Explanation:   "Quick Sort is not a stable sorting algorithm because it swaps non-adjacent elements.",
			Subject:       model.SubjectCSE,
			Topic:         "Algorithms",
			Difficulty:    model.DifficultyMedium,
		},
		{
			ID:            "cse_q2",
			Text:          "What is the time complexity of searching in a balanced BST?",
			Options:       []string{"O(n)", "O(log n)", "O(1)", "O(n log n)"},
			CorrectAnswer: 1,
			Explanation:   "In a balanced Binary Search Tree, the height is log(n), so searching takes O(log n).",
			Subject:       model.SubjectCSE,
			Topic:         "Algorithms",
			Difficulty:    model.DifficultyEasy,
		},
		{
			ID:            "cse_q3",
			Text:          "In TCP, which flag is used to initiate a connection?",
			Options:       []string{"FIN", "SYN", "ACK", "RST"},
			CorrectAnswer: 1,
			Explanation:   "The SYN (Synchronize) flag is used to initiate a connection during the TCP 3-way handshake.",
			Subject:       model.SubjectCSE,
			Topic:         "Computer Networks",
			Difficulty:    model.DifficultyEasy,
		},
		{
			ID:            "cse_q4",
			Text:          "Which layer of OSI model is responsible for encryption?",
			Options:       []string{"Application", "Presentation", "Session", "Transport"},
			CorrectAnswer: 1,
			Explanation:   "The Presentation layer handles encryption, compression, and translation.",
			Subject:       model.SubjectCSE,
			Topic:         "Computer Networks",
			Difficulty:    model.DifficultyMedium,
		},
		{
			ID:            "cse_q5",
			Text:          "In DBMS, which normal form deals with multi-valued dependencies?",
			Options:       []string{"2NF", "3NF", "BCNF", "4NF"},
			CorrectAnswer: 3,
			Explanation:   "4NF (Fourth Normal Form) handles multi-valued dependencies.",
			Subject:       model.SubjectCSE,
			Topic:         "DBMS",
			Difficulty:    model.DifficultyHard,
		},

		// Mechanical
		{
			ID:            "mech_q1",
			Text:          "What is the efficiency of the Otto cycle depending on?",
			Options:       []string{"Temperature limits", "Pressure ratio", "Compression ratio", "Cut-off ratio"},
			CorrectAnswer: 2,
			Explanation:   "The efficiency of the Otto cycle depends only on the compression ratio.",
			Subject:       model.SubjectMech,
			Topic:         "Thermodynamics",
			Difficulty:    model.DifficultyMedium,
		},
		{
			ID:            "mech_q2",
			Text:          "Bernoullis equation is applicable for:",
			Options:       []string{"Viscous flow", "Compressible flow", "Inviscid, incompressible flow", "Unsteady flow"},
			CorrectAnswer: 2,
			Explanation:   "Bernoullis equation is valid for steady, inviscid, incompressible, and irrotational flow along a streamline.",
			Subject:       model.SubjectMech,
			Topic:         "Fluid Mechanics",
			Difficulty:    model.DifficultyMedium,
		},
		{
			ID:            "mech_q3",
			Text:          "The ability of a material to absorb energy within the elastic range is called:",
			Options:       []string{"Toughness", "Resilience", "Hardness", "Stiffness"},
			CorrectAnswer: 1,
			Explanation:   "Resilience is the ability to absorb energy in the elastic limit. Toughness is up to fracture.",
			Subject:       model.SubjectMech,
			Topic:         "Strength of Materials",
			Difficulty:    model.DifficultyEasy,
		},

		// Electrical
		{
			ID:            "ee_q1",
			Text:          "For a 2-port network, the reciprocity condition in terms of Z-parameters is:",
			Options:       []string{"Z11 = Z22", "Z12 = Z21", "Z12 = -Z21", "Z11 * Z22 = 1"},
			CorrectAnswer: 1,
			Explanation:   "A network is reciprocal if Z12 = Z21.",
			Subject:       model.SubjectElectrical,
			Topic:         "Circuit Theory",
			Difficulty:    model.DifficultyMedium,
		},
		{
			ID:            "ee_q2",
			Text:          "The function of a commutator in a DC generator is:",
			Options:       []string{"To reduce friction", "To convert AC to DC", "To convert DC to AC", "To improve cooling"},
			CorrectAnswer: 1,
			Explanation:   "A commutator acts as a mechanical rectifier, converting the internal AC induced in the armature to DC output.",
			Subject:       model.SubjectElectrical,
			Topic:         "Electrical Machines",
			Difficulty:    model.DifficultyEasy,
		},

		// ENTC
		{
			ID:            "entc_q1",
			Text:          "Which diode is used as a voltage regulator?",
			Options:       []string{"Tunnel Diode", "Zener Diode", "Varactor Diode", "PIN Diode"},
			CorrectAnswer: 1,
			Explanation:   "Zener diodes are designed to operate in the reverse breakdown region, making them suitable for voltage regulation.",
			Subject:       model.SubjectENTC,
			Topic:         "Analog Circuits",
			Difficulty:    model.DifficultyEasy,
		},

		// Civil
		{
			ID:            "civil_q1",
			Text:          "The slenderness ratio of a column is defined as the ratio of its effective length to its:",
			Options:       []string{"Least radius of gyration", "Least lateral dimension", "Maximum radius of gyration", "Area of cross-section"},
			CorrectAnswer: 0,
			Explanation:   "Slenderness ratio = Effective Length / Least Radius of Gyration.",
			Subject:       model.SubjectCivil,
			Topic:         "Structural Analysis",
			Difficulty:    model.DifficultyMedium,
		},
		{
			ID:            "civil_q2",
			Text:          "Reynolds number is the ratio of inertial force to:",
			Options:       []string{"Gravity force", "Viscous force", "Elastic force", "Pressure force"},
			CorrectAnswer: 1,
			Explanation:   "Reynolds Number = Inertial Force / Viscous Force.",
			Subject:       model.SubjectCivil,
			Topic:         "Fluid Mechanics",
			Difficulty:    model.DifficultyEasy,
		},
	}
}

// DefaultUsers are the accounts the web client seeds on first load.
func DefaultUsers() []model.User {
	return []model.User{
		{ID: "admin-001", Name: "MCOET Admin", Role: model.RoleAdmin},
		{ID: "student-001", Name: "Rahul Student", Role: model.RoleUser, Branch: string(model.SubjectCSE)},
	}
}
