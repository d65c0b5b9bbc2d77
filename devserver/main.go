// Runs the devapi stub so the client can be exercised without the real
// platform.
package main

import (
	"flag"
	"fmt"

	"github.com/apex/log"

	"afiliado/devapi"
)

var (
	port      = flag.Int("port", 8080, "Port to listen on.")
	jwtSecret = flag.String("jwt_secret", "dev-secret", "Secret for signing dev tokens.")
)

func main() {
	flag.Parse()

	server := devapi.New(*jwtSecret)
	addr := fmt.Sprintf(":%d", *port)
	log.Infof("Dev API listening on %s", addr)
	if err := server.Router().Run(addr); err != nil {
		log.Errorf("Dev API stopped: %v", err)
	}
}
