/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package webhook

import (
	"context"
	"crypto/tls"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// coalesceWindow is the batched-write settle time before a changed cert/key
// pair is reloaded.
const coalesceWindow = 5 * time.Second

// gracefulShutdownTimeout bounds how long Shutdown waits for in-flight
// requests to drain after readyz flips false.
const gracefulShutdownTimeout = 30 * time.Second

// Server is the TLS-terminating admission webhook: net/http+crypto/tls,
// with a swappable certificate held behind an atomic pointer, reloaded from
// disk after a 5s coalescing wait following any filesystem event on the cert
// or key's parent directory (covering the common Secret-mount symlink-swap
// case).
type Server struct {
	certPath, keyPath string
	cert              atomic.Pointer[tls.Certificate]
	log               logr.Logger
	httpServer        *http.Server
}

// NewServer builds a Server listening on addr, serving state's validating
// routes over TLS backed by the certificate/key at certPath/keyPath.
func NewServer(addr, certPath, keyPath string, state *State, log logr.Logger) (*Server, error) {
	s := &Server{certPath: certPath, keyPath: keyPath, log: log}
	if err := s.reloadCertificate(); err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{
		GetCertificate: s.getCertificate,
		// ALPN advertises h2 and http/1.1.
		NextProtos: []string{"h2", "http/1.1"},
	}
	s.httpServer = &http.Server{
		Addr:      addr,
		Handler:   Routes(state),
		TLSConfig: tlsConfig,
	}
	return s, nil
}

func (s *Server) getCertificate(_ *tls.ClientHelloInfo) (*tls.Certificate, error) {
	return s.cert.Load(), nil
}

func (s *Server) reloadCertificate() error {
	cert, err := tls.LoadX509KeyPair(s.certPath, s.keyPath)
	if err != nil {
		return err
	}
	s.cert.Store(&cert)
	return nil
}

// ListenAndServeTLS runs the HTTPS server until ctx is cancelled, running the
// certificate hot-reload watcher alongside it.
func (s *Server) ListenAndServeTLS(ctx context.Context) error {
	go s.watchCertificates(ctx)

	errCh := make(chan error, 1)
	go func() {
		// Certificates come from TLSConfig.GetCertificate; empty strings here
		// are intentional, matching the documented net/http contract.
		errCh <- s.httpServer.ListenAndServeTLS("", "")
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// watchCertificates watches the parent directories of both files (so a
// Secret-mount symlink swap is seen), coalesces bursts of events for
// coalesceWindow, then reloads.
func (s *Server) watchCertificates(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Error(err, "failed to create certificate watcher")
		return
	}
	defer watcher.Close()

	dirs := map[string]bool{
		filepath.Dir(s.certPath): true,
		filepath.Dir(s.keyPath):  true,
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			s.log.Error(err, "failed to watch certificate directory", "dir", dir)
		}
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(coalesceWindow)
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(coalesceWindow)
			}
			timerC = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Error(err, "certificate watcher error")
		case <-timerC:
			timerC = nil
			if err := s.reloadCertificate(); err != nil {
				s.log.Error(err, "failed to reload tls certificate, keeping previous config")
				continue
			}
			s.log.Info("reloaded tls certificate")
		}
	}
}
