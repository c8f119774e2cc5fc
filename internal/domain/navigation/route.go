// Package navigation decide o próximo destino do cliente a partir do estado
// de sessão. Três saídas possíveis, sem estados intermediários.
package navigation

import "github.com/comanda-app/comanda-api/internal/domain/accesscode"

// Route é o destino de navegação calculado.
type Route string

const (
	RouteDashboard     Route = "dashboard"
	RouteCodeEntry     Route = "collaborator-code-entry"
	RoutePublicLanding Route = "public-landing"
)

// NextRoute deriva o destino do zero a cada chamada. Não existe máquina de
// estados persistente: o resultado depende só dos argumentos.
func NextRoute(isAuthenticated bool, code string) Route {
	if !isAuthenticated {
		return RoutePublicLanding
	}
	if accesscode.IsValid(code) {
		return RouteDashboard
	}
	return RouteCodeEntry
}
