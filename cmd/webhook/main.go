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

// Command webhook runs the TLS-terminating validating admission webhook,
// fed by four label-filtered reflectors (one per domain kind) feeding a
// webhook.State the HTTP handlers validate against.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/k8sutil"
	"github.com/pando85/kaniop-sub001/internal/store"
	"github.com/pando85/kaniop-sub001/internal/version"
	"github.com/pando85/kaniop-sub001/internal/webhook"
)

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(v1beta1.AddToScheme(scheme))
}

type options struct {
	listenAddress string
	port          int
	tlsCert       string
	tlsKey        string
	logFilter     string
	logFormat     string
	tracingURL    string
	sampleRatio   float64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "kaniop-webhook",
		Short:        "Kanidm admission webhook",
		Version:      version.GetVersion(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVar(&opts.listenAddress, "listen-address", envStr("LISTEN_ADDRESS", "0.0.0.0"), "address the webhook listens on")
	flags.IntVar(&opts.port, "port", envInt("PORT", 8443), "TLS port the webhook listens on")
	flags.StringVar(&opts.tlsCert, "tls-cert", envStr("TLS_CERT", ""), "path to the TLS certificate (required)")
	flags.StringVar(&opts.tlsKey, "tls-key", envStr("TLS_KEY", ""), "path to the TLS private key (required)")
	flags.StringVar(&opts.logFilter, "log-filter", envStr("LOG_FILTER", ""), "log level filter expression")
	flags.StringVar(&opts.logFormat, "log-format", envStr("LOG_FORMAT", "text"), "log output format: text or json")
	flags.StringVar(&opts.tracingURL, "tracing-url", envStr("TRACING_URL", ""), "OTLP tracing endpoint")
	flags.Float64Var(&opts.sampleRatio, "sample-ratio", envFloat("SAMPLE_RATIO", 0.1), "trace sampling ratio")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	if opts.tlsCert == "" || opts.tlsKey == "" {
		return fmt.Errorf("startup failed: --tls-cert and --tls-key are required")
	}

	log.SetLogger(zap.New(zap.UseDevMode(opts.logFormat != "json")))
	logger := log.Log.WithName("webhook")

	restConfig, err := ctrl.GetConfig()
	if err != nil {
		return fmt.Errorf("startup failed: loading kubeconfig: %w", err)
	}

	cl, err := client.NewWithWatch(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return fmt.Errorf("startup failed: building client: %w", err)
	}

	state := webhook.NewState()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runReflector(runCtx, cl, func() client.ObjectList { return &v1beta1.KanidmGroupList{} }, state.GroupStore, k8sutil.ManagedBySelector("kanidmgroup"))
	runReflector(runCtx, cl, func() client.ObjectList { return &v1beta1.KanidmPersonAccountList{} }, state.PersonStore, k8sutil.ManagedBySelector("kanidmpersonaccount"))
	runReflector(runCtx, cl, func() client.ObjectList { return &v1beta1.KanidmOAuth2ClientList{} }, state.OAuth2Store, k8sutil.ManagedBySelector("kanidmoauth2client"))
	runReflector(runCtx, cl, func() client.ObjectList { return &v1beta1.KanidmServiceAccountList{} }, state.ServiceAccountStore, k8sutil.ManagedBySelector("kanidmserviceaccount"))

	addr := fmt.Sprintf("%s:%d", opts.listenAddress, opts.port)
	srv, err := webhook.NewServer(addr, opts.tlsCert, opts.tlsKey, state, logger)
	if err != nil {
		return fmt.Errorf("startup failed: building TLS server: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServeTLS(runCtx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		// Flip readyz false first so a load balancer stops sending new
		// requests before ListenAndServeTLS starts its graceful drain.
		state.SetReady(false)
		cancel()
		return <-serveErr
	case err := <-serveErr:
		return err
	}
}

func runReflector(ctx context.Context, cl client.WithWatch, newList func() client.ObjectList, dest *store.Store, labelSelector string) {
	lw := store.NewFilteredListWatch(cl, newList, "", labelSelector)
	go store.RunReflector(ctx, lw, newList(), dest)
}

func envStr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		var parsed int
		if _, err := fmt.Sscanf(v, "%d", &parsed); err == nil {
			return parsed
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		var parsed float64
		if _, err := fmt.Sscanf(v, "%g", &parsed); err == nil {
			return parsed
		}
	}
	return def
}
