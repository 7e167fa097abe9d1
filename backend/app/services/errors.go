package services

import "errors"

// Failure taxonomy surfaced to HTTP callers. Messages are user-facing and
// kept in pt-BR to match the client UI.
var (
	ErrUnauthorized  = errors.New("Token inválido. Por favor, verifique e tente novamente.")
	ErrForbidden     = errors.New("Acesso negado. Apenas administradores podem realizar esta ação.")
	ErrTokenConflict = errors.New("Este token já está em uso. Por favor, escolha outro token.")
	ErrNotFound      = errors.New("Território não encontrado.")
	ErrBadRegion     = errors.New("Região inválida.")
	ErrBadRole       = errors.New("Papel inválido. Use ADMIN ou USER.")
	ErrBadCursor     = errors.New("Cursor de paginação inválido.")
)
