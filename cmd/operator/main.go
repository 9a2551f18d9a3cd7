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

// Command operator runs the reflector set and the five domain reconcile
// harnesses that together implement the Kanidm operator. Wiring follows a
// thin cobra root command (a single log.SetLogger call), scaled up to
// multiple controllers sharing one reconciler.Context.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/client-go/kubernetes"
	typedcorev1 "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"

	"go.uber.org/zap/zapcore"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	kaniopv1 "github.com/pando85/kaniop-sub001/api/v1"
	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/backoff"
	"github.com/pando85/kaniop-sub001/internal/version"
	"github.com/pando85/kaniop-sub001/internal/controller/group"
	"github.com/pando85/kaniop-sub001/internal/controller/kanidm"
	"github.com/pando85/kaniop-sub001/internal/controller/oauth2"
	"github.com/pando85/kaniop-sub001/internal/controller/person"
	"github.com/pando85/kaniop-sub001/internal/controller/serviceaccount"
	"github.com/pando85/kaniop-sub001/internal/k8sutil"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
	"github.com/pando85/kaniop-sub001/internal/reconciler"
	"github.com/pando85/kaniop-sub001/internal/store"
)

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(kaniopv1.AddToScheme(scheme))
	utilruntime.Must(v1beta1.AddToScheme(scheme))
	utilruntime.Must(corev1.AddToScheme(scheme))
	utilruntime.Must(appsv1.AddToScheme(scheme))
	utilruntime.Must(networkingv1.AddToScheme(scheme))
}

type options struct {
	port        int
	logFilter   string
	logFormat   string
	tracingURL  string
	sampleRatio float64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "kaniop-operator",
		Short:        "Kanidm identity management operator",
		Version:      version.GetVersion(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.IntVar(&opts.port, "port", envInt("PORT", 8080), "HTTP port serving /metrics and /health")
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
	zapLog, err := buildZapLogger(opts.logFormat, opts.logFilter)
	if err != nil {
		return fmt.Errorf("startup failed: building logger: %w", err)
	}
	log.SetLogger(zapLog)
	logger := log.Log.WithName("operator")

	restConfig, err := ctrl.GetConfig()
	if err != nil {
		return fmt.Errorf("startup failed: loading kubeconfig: %w", err)
	}

	cl, err := client.NewWithWatch(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return fmt.Errorf("startup failed: building client: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return fmt.Errorf("startup failed: building clientset: %w", err)
	}

	if _, err := cl.RESTMapper().RESTMapping(kaniopv1.GroupVersion.WithKind("Kanidm").GroupKind()); err != nil {
		logger.Error(err, "Kanidm CRD not found; is it installed?")
		return fmt.Errorf("startup failed: CRD check: %w", err)
	}

	eventBroadcaster := record.NewBroadcaster()
	eventBroadcaster.StartRecordingToSink(&typedcorev1.EventSinkImpl{Interface: clientset.CoreV1().Events("")})
	defer eventBroadcaster.Shutdown()

	kanidmCache := kanidmclient.NewCache(cl)
	backoffTable := backoff.NewTable()

	stores := map[string]*store.Store{}
	reload := make(chan struct{}, 16)

	newCtx := func(controllerID string) *reconciler.Context {
		recorder := eventBroadcaster.NewRecorder(scheme, corev1.EventSource{Component: "kaniop-" + controllerID})
		return reconciler.NewContext(controllerID, cl, kanidmCache, stores, backoffTable, recorder, restConfig, clientset, logger.WithValues("controller", controllerID))
	}

	kanidmCtx := newCtx(kanidm.ControllerID)
	kanidmCtrl := kanidm.New(kanidmCtx, reload)

	groupCtrl := group.New(newCtx("kanidmgroup"))
	personCtrl := person.New(newCtx("kanidmpersonaccount"))
	oauth2Ctrl := oauth2.New(newCtx("kanidmoauth2client"))
	saCtrl := serviceaccount.New(newCtx("kanidmserviceaccount"))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runReflector(runCtx, cl, func() client.ObjectList { return &kaniopv1.KanidmList{} }, kanidmCtrl.Store(), kanidm.ManagedBySelector())
	runOwnedReflectors(runCtx, cl, reload, kanidm.ControllerID)

	runReflector(runCtx, cl, func() client.ObjectList { return &v1beta1.KanidmGroupList{} }, groupCtrl.Store(), k8sutil.ManagedBySelector("kanidmgroup"))
	runReflector(runCtx, cl, func() client.ObjectList { return &v1beta1.KanidmPersonAccountList{} }, personCtrl.Store(), k8sutil.ManagedBySelector("kanidmpersonaccount"))
	runReflector(runCtx, cl, func() client.ObjectList { return &v1beta1.KanidmOAuth2ClientList{} }, oauth2Ctrl.Store(), k8sutil.ManagedBySelector("kanidmoauth2client"))
	runReflector(runCtx, cl, func() client.ObjectList { return &v1beta1.KanidmServiceAccountList{} }, saCtrl.Store(), k8sutil.ManagedBySelector("kanidmserviceaccount"))

	go kanidmCtrl.Start(runCtx)
	go groupCtrl.Start(runCtx)
	go personCtrl.Start(runCtx)
	go oauth2Ctrl.Start(runCtx)
	go saCtrl.Start(runCtx)

	srv := newHTTPServer(opts.port)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("startup failed: metrics server: %w", err)
		}
		return nil
	}
}

// runReflector drives a reflector filtered by labelSelector into dest. newList
// builds an empty list of the watched kind for every list/watch call and for
// the reflector's expected type.
func runReflector(ctx context.Context, cl client.WithWatch, newList func() client.ObjectList, dest *store.Store, labelSelector string) {
	lw := store.NewFilteredListWatch(cl, newList, "", labelSelector)
	go store.RunReflector(ctx, lw, newList(), dest)
}

// runOwnedReflectors wires the StatefulSet/Service/Ingress/Secret reflectors
// that feed the kanidm controller's reload fan-in, each labeled with the
// same managed-by selector the kanidm controller renders onto objects it
// owns.
func runOwnedReflectors(ctx context.Context, cl client.WithWatch, reload chan<- struct{}, controllerID string) {
	sel := k8sutil.ManagedBySelector(controllerID)
	for _, newList := range []func() client.ObjectList{
		func() client.ObjectList { return &appsv1.StatefulSetList{} },
		func() client.ObjectList { return &corev1.ServiceList{} },
		func() client.ObjectList { return &networkingv1.IngressList{} },
		func() client.ObjectList { return &corev1.SecretList{} },
	} {
		ownedStore := store.NewStore(reload)
		lw := store.NewFilteredListWatch(cl, newList, "", sel)
		go store.RunReflector(ctx, lw, newList(), ownedStore)
	}
}

func newHTTPServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(ctrlmetrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode("healthy")
	})
	return &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
}

func buildZapLogger(format, filter string) (logr.Logger, error) {
	opts := []zap.Opts{zap.UseDevMode(format != "json")}
	if format == "json" {
		opts = append(opts, zap.Encoder(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())))
	}
	if filter != "" {
		level, err := parseLevel(filter)
		if err != nil {
			return logr.Logger{}, err
		}
		opts = append(opts, zap.Level(level))
	}
	return zap.New(opts...), nil
}

func parseLevel(filter string) (zapcore.LevelEnabler, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(filter)); err != nil {
		return nil, fmt.Errorf("invalid log-filter %q: %w", filter, err)
	}
	return lvl, nil
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

