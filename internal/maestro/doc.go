// Package maestro talks to the orchestration platform that schedules the
// robot, hands it its parameters and receives its alerts and final status.
//
// Two implementations of Client are provided:
//
//   - HTTPClient speaks the platform's v2 REST API. It logs in lazily with
//     the workspace login and key and attaches the access token to every
//     request.
//   - LocalClient is used when no server is configured. Parameters come
//     from the command line, a task ID is generated, and every call is
//     written to the structured logger instead of the network.
//
// Connection settings are read from MAESTRO_* environment variables; a .env
// file in the working directory is honoured.
package maestro
