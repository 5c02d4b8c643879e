// Package http exposes the catalog over net/http.
//
// Routes mount under the configured base path (default "/api"):
//   - Products: GET/POST /products, GET /products/{slug}, PUT/DELETE /products/{id}
//   - Home content: GET/PUT /home
//
// Reads honour ?lang= and Accept-Language and always advertise
// Vary: Accept-Language.
package http
