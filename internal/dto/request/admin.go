package request

type AdminLoginRequest struct {
	CPF      string `json:"cpf" validate:"required,cpf"`
	Password string `json:"password" validate:"required"`
}
