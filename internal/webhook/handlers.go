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
	"encoding/json"
	"net/http"

	admissionv1 "k8s.io/api/admission/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/store"
)

// Routes returns the webhook's mux, one validating handler per domain kind
// plus the liveness/readiness probes.
func Routes(state *State) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", handleLivez)
	mux.HandleFunc("GET /readyz", handleReadyz(state))
	mux.Handle("POST /validate-kanidm-group", validateHandler("KanidmGroup", state.GroupStore, decodeGroup))
	mux.Handle("POST /validate-kanidm-person", validateHandler("KanidmPersonAccount", state.PersonStore, decodePerson))
	mux.Handle("POST /validate-kanidm-oauth2", validateHandler("KanidmOAuth2Client", state.OAuth2Store, decodeOAuth2))
	mux.Handle("POST /validate-kanidm-service-account", validateHandler("KanidmServiceAccount", state.ServiceAccountStore, decodeServiceAccount))
	return mux
}

func handleLivez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("healthy"))
}

func handleReadyz(state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if state.Ready() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func decodeGroup(raw []byte) (Validatable, error) {
	var obj v1beta1.KanidmGroup
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func decodePerson(raw []byte) (Validatable, error) {
	var obj v1beta1.KanidmPersonAccount
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func decodeOAuth2(raw []byte) (Validatable, error) {
	var obj v1beta1.KanidmOAuth2Client
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func decodeServiceAccount(raw []byte) (Validatable, error) {
	var obj v1beta1.KanidmServiceAccount
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// validateHandler builds the shared CREATE-only duplicate-tuple check,
// reused across all four domain kinds via the Validatable interface.
func validateHandler(resourceName string, objStore *store.Store, decode func([]byte) (Validatable, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var review admissionv1.AdmissionReview
		if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
			writeReview(w, deny("unknown", "invalid admission review: "+err.Error()))
			return
		}
		req := review.Request
		if req == nil {
			writeReview(w, deny("unknown", "invalid admission review: missing request"))
			return
		}

		if req.Operation != admissionv1.Create {
			writeReview(w, allow(req.UID))
			return
		}
		if req.Object.Raw == nil {
			writeReview(w, deny(req.UID, "invalid admission review: missing object"))
			return
		}

		obj, err := decode(req.Object.Raw)
		if err != nil {
			writeReview(w, deny(req.UID, resourceName+" is not valid: "+err.Error()))
			return
		}

		if err := CheckDuplicate(obj, objStore); err != nil {
			writeReview(w, deny(req.UID, resourceName+" with "+err.Error()))
			return
		}
		writeReview(w, allow(req.UID))
	}
}

func allow(uid types.UID) *admissionv1.AdmissionResponse {
	return &admissionv1.AdmissionResponse{UID: uid, Allowed: true}
}

func deny(uid types.UID, message string) *admissionv1.AdmissionResponse {
	return &admissionv1.AdmissionResponse{
		UID:     uid,
		Allowed: false,
		Result:  &metav1.Status{Message: message},
	}
}

func writeReview(w http.ResponseWriter, resp *admissionv1.AdmissionResponse) {
	review := admissionv1.AdmissionReview{
		TypeMeta: metav1.TypeMeta{
			APIVersion: admissionv1.SchemeGroupVersion.String(),
			Kind:       "AdmissionReview",
		},
		Response: resp,
	}
	w.Header().Set("Content-Type", runtime.ContentTypeJSON)
	_ = json.NewEncoder(w).Encode(review)
}
