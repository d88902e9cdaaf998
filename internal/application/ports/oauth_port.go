package ports

import (
	"context"

	"github.com/jhoicas/pos-api/internal/application/dto"
)

// OAuthProvider define el puerto del proveedor de identidad federada (Google).
type OAuthProvider interface {
	// AuthCodeURL URL de consentimiento a la que se redirige al usuario.
	AuthCodeURL(state string) string
	// Exchange canjea el code del callback y devuelve el perfil verificado.
	Exchange(ctx context.Context, code string) (*dto.FederatedProfile, error)
}
