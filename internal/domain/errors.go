package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается, когда запрошенная сущность не существует.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized возвращается, когда запрос не привязан к действующей сессии.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials возвращается при неверном login_name или пароле.
	ErrInvalidCredentials = errors.New("invalid login_name or password")
	// ErrNotLoggedIn возвращается при выходе без активной сессии.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrDuplicateLogin возвращается при регистрации занятого login_name.
	ErrDuplicateLogin = errors.New("login_name already exists")
	// ErrEmptyComment возвращается, если текст комментария пуст после обрезки пробелов.
	ErrEmptyComment = errors.New("comment cannot be empty")
	// ErrPhotoNotFound возвращается, если фото для комментария не найдено.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrNoFile возвращается, если в запросе на загрузку нет файла.
	ErrNoFile = errors.New("no file uploaded")
)

// ValidationError описывает отсутствующее или некорректное поле запроса.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MissingField создаёт ValidationError для обязательного поля.
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
}
