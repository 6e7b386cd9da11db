package model

// AdminDashboard holds the counters shown at the top of the admin panel.
type AdminDashboard struct {
	PendingClassRequests  int `json:"pending_class_requests"`
	PendingCreditRequests int `json:"pending_credit_requests"`
	TotalStudents         int `json:"total_students"`
	TotalUsers            int `json:"total_users"`
	StudentsOwing         int `json:"students_owing"`
	ClassesOwed           int `json:"classes_owed"`
	ApprovedClassesMonth  int `json:"approved_classes_this_month"`
}

// StudentDashboard is everything the student dashboard renders in one call.
type StudentDashboard struct {
	User           *User           `json:"user"`
	Balance        Balance         `json:"balance"`
	ClassRequests  []ClassRequest  `json:"class_requests"`
	CreditRequests []CreditRequest `json:"credit_requests"`
}
