package players

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	PlayerID string `json:"player_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

type LobbyPlayer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  UserInfo      `json:"user"`
	Lobby []LobbyPlayer `json:"lobby"`
}
