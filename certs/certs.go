// Package certs loads TLS material for servers and clients.
package certs

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// Opts holds options for certificates.
type Opts struct {
	CAFile         string `long:"ca-file"          env:"CA_FILE"          default:"ca.crt"     description:"Path to the CA cert file to load."`
	ClientCertFile string `long:"client-cert-file" env:"CLIENT_CERT_FILE" default:"client.crt" description:"Path to the client certificate .pem file."`
	ClientKeyFile  string `long:"client-key-file"  env:"CLIENT_KEY_FILE"  default:"client.key" description:"Path to the client key .pem file."`
	ServerCertFile string `long:"server-cert-file" env:"SERVER_CERT_FILE" default:"server.crt" description:"Path to the server certificate .pem file."`
	ServerKeyFile  string `long:"server-key-file"  env:"SERVER_KEY_FILE"  default:"server.key" description:"Path to the server key .pem file."`
}

// ClientTLSConfig returns a client TLS config.
func (o Opts) ClientTLSConfig() (*tls.Config, error) {
	pool, err := certificatePool(o.CAFile)
	if err != nil {
		return nil, fmt.Errorf("creating certificate pool: %w", err)
	}
	certificate, err := tls.LoadX509KeyPair(o.ClientCertFile, o.ClientKeyFile)
	if err != nil {
		return nil, fmt.Errorf("loading client key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{certificate},
		RootCAs:      pool,
	}, nil
}

// ServerTLSConfig returns a server TLS config.
func (o Opts) ServerTLSConfig() (*tls.Config, error) {
	certificate, err := tls.LoadX509KeyPair(o.ServerCertFile, o.ServerKeyFile)
	if err != nil {
		return nil, fmt.Errorf("loading server key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{certificate},
		ClientAuth:   tls.NoClientCert,
	}, nil
}

func certificatePool(filename string) (*x509.CertPool, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if ok := pool.AppendCertsFromPEM(bytes); !ok {
		return nil, errors.New("failed to append CA certs to certificate pool, is the .pem file valid?")
	}
	return pool, nil
}
