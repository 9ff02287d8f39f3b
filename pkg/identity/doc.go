// Package identity is the client for the laboratory API's identity endpoints:
// the credential exchange (POST /auth/token/) and the current-user profile
// (GET /users/me/). It also defines the user profile and permission record
// the rest of the client reads to gate edit-capable features.
package identity
