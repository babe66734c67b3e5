// Package comparison exposes the comparison engine over HTTP.
//
// # HTTP Endpoints
//
//   - POST /comparison : Runs a definition. The body is JSON by default; YAML and TOML are
//     accepted when the Content-Type says so. ?include=output returns the final list.
//   - GET /comparison/lists : Returns the list named by ?locator=, or all stored locators.
//
// Definition, token and pattern errors answer 400 with the failing step, missing input
// lists 404, and load or save failures 500. Outputs saved by steps before the failing
// one stay saved and are reported under "completed".
package comparison
