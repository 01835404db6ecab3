// Package endpoints registers the page and JSON API handlers on the server
// router.
package endpoints

import (
	"github.com/tilhq/til-in-go/pkg/server"
)

// RegisterAll registers every endpoint on the server's router.
func RegisterAll(s *server.Server) {
	RegisterCategoriesAPI(s)
	RegisterWebsiteEndpoints(s)
}
