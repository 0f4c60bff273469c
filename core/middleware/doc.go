// Package middleware contains HTTP middleware for the status API.
//
// # Components
//
//   - auth: API key validation (X-API-Key header) with an allow list of
//     public paths such as /health.
//   - rayid: a unique request id (RayID) for every incoming request, stored
//     in the Fiber locals and echoed in the X-Ray-ID response header.
package middleware
