package entities

// ProfileUpdate описывает изменения профиля. nil означает, что поле не передано.
// При Replace отсутствующие поля считаются пустыми: username и password обязательны,
// email очищается.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
	Replace  bool
}
