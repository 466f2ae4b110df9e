package grpc

import (
	"fmt"
)

// Opts holds gRPC server and client opts.
type Opts struct {
	Port       int    `long:"port" env:"PORT" description:"Port to serve gRPC on." default:"9090"`
	Host       string `long:"host" env:"HOST" description:"Host for a client to connect to."`
	DisableTLS bool   `long:"disable-tls" env:"DISABLE_TLS" description:"Set to true in order to disable TLS for this service."`
}

func (o *Opts) target() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}
