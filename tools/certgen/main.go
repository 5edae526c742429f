// Package main generates a self-signed development server certificate and
// key, writing them to files under the "certs" directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/cipromart/directory/internal/certgen"
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma separated host names and IPs")
	validFor := flag.Duration("valid-for", 365*24*time.Hour, "certificate lifetime")
	flag.Parse()

	certPath, keyPath, err := run(*dir, splitHosts(*hosts), *validFor)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Certificate written to %s\nKey written to %s\n", certPath, keyPath)
}

// run generates the pair and writes server.crt and server.key into dir.
func run(dir string, hosts []string, validFor time.Duration) (string, string, error) {
	certPEM, keyPEM, err := certgen.GenerateServerCertificate(hosts, validFor)
	if err != nil {
		return "", "", err
	}
	certPath := filepath.Join(dir, "server.crt")
	keyPath := filepath.Join(dir, "server.key")
	if err := certgen.WriteFiles(certPath, keyPath, certPEM, keyPEM); err != nil {
		return "", "", err
	}
	return certPath, keyPath, nil
}

func splitHosts(s string) []string {
	var out []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
