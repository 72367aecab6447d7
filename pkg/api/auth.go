package api

// SignInRequest представляет запрос на аутентификацию
type SignInRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль пользователя
}

// Tokens представляет связку токенов, выдаваемую сервером
// Все три токена - opaque bearer строки; клиент заглядывает только в exp claim access токена
type Tokens struct {
	AccessToken  string `json:"accessToken"`  // короткоживущий access token (JWT)
	IDToken      string `json:"idToken"`      // identity token (JWT)
	RefreshToken string `json:"refreshToken"` // долгоживущий refresh token
}

// UserAttribute представляет один атрибут профиля пользователя
type UserAttribute struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// UserInfo представляет информацию о текущем пользователе
type UserInfo struct {
	Username   string          `json:"username"`
	Attributes []UserAttribute `json:"attributes"`
}

// SignInResponse представляет ответ на успешный вход
type SignInResponse struct {
	User   UserInfo `json:"user"`
	Tokens Tokens   `json:"tokens"`
}

// RefreshRequest представляет запрос на обновление токенов
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse представляет ответ с новой связкой токенов
// Сервер ротирует все три токена атомарно
type RefreshResponse struct {
	Tokens Tokens `json:"tokens"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
