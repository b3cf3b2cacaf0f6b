// Package client is the app's transport to the SikaCare backend.
//
// Client is the contract the services depend on; RESTClient implements it
// over HTTP against a GoTrue-compatible auth API (/auth/v1) and a
// PostgREST-compatible table API (/rest/v1). Liveness is probed through the
// backend's gRPC health service when one is configured.
//
// Non-2xx answers come back as *APIError carrying the backend's message;
// errors.Is(err, ErrUnauthorized), ErrRateLimited and ErrUnavailable classify
// them. Transport failures are reported as ErrUnavailable.
package client
