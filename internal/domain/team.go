package domain

// Team представляет команду
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeamAgeStats содержит агрегаты по возрасту участников одной команды
type TeamAgeStats struct {
	TeamID      int64   `json:"teamId"`
	TeamName    string  `json:"teamName"`
	MemberCount int64   `json:"memberCount"`
	AgeSum      int64   `json:"ageSum"`
	AgeAvg      float64 `json:"ageAvg"`
	AgeMin      int     `json:"ageMin"`
	AgeMax      int     `json:"ageMax"`
}
