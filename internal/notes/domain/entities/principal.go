package entities

// Principal - аутентифицированный пользователь. nil означает анонима.
type Principal struct {
	UserID   string
	Username string
}

// IsAuthenticated сообщает, представляет ли p вошедшего пользователя.
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.UserID != ""
}
