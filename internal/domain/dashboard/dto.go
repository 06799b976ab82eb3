package dashboard

// Counts are today's headline numbers as computed by the backend.
type Counts struct {
	TotalEmployees int `json:"total_employees"`
	PresentToday   int `json:"present_today"`
	AbsentToday    int `json:"absent_today"`
	UnmarkedToday  int `json:"unmarked_today"`
}
