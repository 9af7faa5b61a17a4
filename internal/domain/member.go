package domain

// Member представляет участника, который может состоять не более чем в одной команде.
// Внешний ключ на команду хранится только здесь; список участников команды
// получается отдельным запросом (MemberRepository.ListByTeam).
type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Age      int    `json:"age"`
	TeamID   *int64 `json:"teamId,omitempty"`
}

// HasTeam возвращает true если участник привязан к команде
func (m *Member) HasTeam() bool {
	return m.TeamID != nil
}

// MemberTeam представляет плоскую строку результата поиска (участник + его команда).
// TeamID и TeamName равны nil для участников без команды.
type MemberTeam struct {
	MemberID int64   `json:"memberId"`
	Username string  `json:"username"`
	Age      int     `json:"age"`
	TeamID   *int64  `json:"teamId"`
	TeamName *string `json:"teamName"`
}
