package auth

import "context"

// TokenSource entrega el bearer token con el que se llama a los servicios
// upstream. El token y la identidad del paciente son inputs opacos para el
// core: acá solo se transportan.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapta una función a TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken es un TokenSource de token fijo (service account).
func StaticToken(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return token, nil
	})
}
