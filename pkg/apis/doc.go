// Package apis provides API type definitions for the registry stack.
//
//   - stack: Stack configuration types loaded from gatewayinfra.yaml, env and flags
package apis
