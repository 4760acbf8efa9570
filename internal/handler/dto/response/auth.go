package response

import "shareit/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user"`
}

func FromLogin(accessToken string, u *queries.UserView) *LoginResponse {
	return &LoginResponse{
		AccessToken: accessToken,
		User:        FromUserView(u),
	}
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}
